// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User is a back-office account. Credentials are stored as an argon2id
// hash with a per-user salt, never in plaintext.
type User struct {
	ID        uuid.UUID // PK
	Handle    string    // unique login identifier, distinct from display name
	Email     string    // unique
	Name      string    // display name
	PwdHash   []byte    // argon2id(password, Salt)
	Salt      []byte    // per-user auth salt
	CreatedAt time.Time
}

// Session is an issued bearer token with its expiry (for diagnostics).
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Work is a single portfolio case-study entry shown on the public site.
type Work struct {
	ID          int64  // agency-assigned sequence number, starts at 1
	Title       string
	Client      string
	Description string
	CategoryID  int      // one of nine fixed service offerings, [1,9]
	Results     []string // 1..10 non-blank result strings
	Tech        []string // 1..10 non-blank technology tags
	Image       []byte   // stored binary payload
	ImageType   string   // content type reported at upload
	Duration    string
	Color       string // presentational theme pair
	BgColor     string
	CreatedAt   time.Time
}

// NewWork carries the validated fields for a work entry before the
// sequence id is assigned.
type NewWork struct {
	Title       string
	Client      string
	Description string
	CategoryID  int
	Results     []string
	Tech        []string
	Image       []byte
	ImageType   string
	Duration    string
	Color       string
	BgColor     string
}

// Reply is the back-office answer to a contact message. Either all three
// fields are set or the message has no reply at all.
type Reply struct {
	Subject string
	Body    string
	SentAt  time.Time
}

// ContactMessage is an inbound contact-form submission.
type ContactMessage struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Mobile      string // optional
	Description string
	Seen        bool
	Reply       *Reply // nil until the back office replies
	CreatedAt   time.Time
}

// ContactListOptions filters and pages the back-office inbox.
type ContactListOptions struct {
	// Seen filters by read state; nil returns all messages.
	Seen   *bool
	Limit  int
	Offset int
}
