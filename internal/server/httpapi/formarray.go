package httpapi

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// formArray extracts a string list named field from already-parsed multipart
// form values. Legacy clients encoded arrays three ways, accepted here in
// precedence order:
//
//  1. indexed fields: field[0], field[1], ...
//  2. repeated fields: several values under the plain field name
//  3. a single value under the plain field name containing a JSON array
//
// A single plain value that is not a JSON array counts as a one-element
// list. Blank entries are dropped after extraction.
func formArray(values map[string][]string, field string) []string {
	if out := indexedFields(values, field); out != nil {
		return dropBlank(out)
	}

	vs := values[field]
	switch {
	case len(vs) > 1:
		return dropBlank(vs)
	case len(vs) == 1:
		if arr, ok := jsonArray(vs[0]); ok {
			return dropBlank(arr)
		}
		return dropBlank(vs)
	default:
		return nil
	}
}

// indexedFields collects field[i] values ordered by index, or nil when the
// form has none.
func indexedFields(values map[string][]string, field string) []string {
	prefix := field + "["
	type entry struct {
		idx int
		val string
	}
	var entries []entry
	for key, vs := range values {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "]") || len(vs) == 0 {
			continue
		}
		idx, err := strconv.Atoi(key[len(prefix) : len(key)-1])
		if err != nil {
			continue
		}
		entries = append(entries, entry{idx: idx, val: vs[0]})
	}
	if entries == nil {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.val
	}
	return out
}

func jsonArray(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		return nil, false
	}
	var arr []string
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil, false
	}
	return arr, true
}

func dropBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
