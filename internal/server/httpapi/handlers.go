package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/nexel-studio/agency-api/internal/model"
)

// --- Auth ---

type registerRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "user_id, name, password and a valid email are required")
		return
	}
	if _, err := s.auth.Register(c.Request.Context(), req.UserID, req.Name, req.Email, req.Password); err != nil {
		s.failErr(c, err)
		return
	}
	success(c, http.StatusCreated, "account created", nil)
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type userSummary struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type sessionJSON struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "password and a user_id or email are required")
		return
	}
	sess, u, err := s.auth.LoginWithIP(c.Request.Context(), req.UserID, req.Email, req.Password, c.ClientIP())
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, http.StatusOK, "logged in", gin.H{
		"user":    userSummary{UserID: u.Handle, Name: u.Name, Email: u.Email},
		"session": sessionJSON{Token: sess.Token, ExpiresAt: sess.ExpiresAt},
	})
}

// --- Contact ---

type contactRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Mobile string `json:"mobile"`
	Desc   string `json:"desc" binding:"required"`
}

func (s *Server) handleSendContactMail(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "name, desc and a valid email are required")
		return
	}
	id, err := s.contact.Submit(c.Request.Context(), req.Name, req.Email, req.Mobile, req.Desc)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, http.StatusCreated, "message received, we will get back to you soon", gin.H{"id": id.String()})
}

// --- Works ---

type workJSON struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Client      string    `json:"client"`
	Description string    `json:"description"`
	CategoryID  int       `json:"categoryId"`
	Results     []string  `json:"results"`
	Tech        []string  `json:"tech"`
	ImageURL    string    `json:"imageUrl"`
	Duration    string    `json:"duration"`
	Color       string    `json:"color"`
	BgColor     string    `json:"bgColor"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (s *Server) handleListWorks(c *gin.Context) {
	works, err := s.works.List(c.Request.Context())
	if err != nil {
		s.failErr(c, err)
		return
	}
	out := make([]workJSON, 0, len(works))
	for _, w := range works {
		out = append(out, workJSON{
			ID:          w.ID,
			Title:       w.Title,
			Client:      w.Client,
			Description: w.Description,
			CategoryID:  w.CategoryID,
			Results:     w.Results,
			Tech:        w.Tech,
			ImageURL:    fmt.Sprintf("/get-our-works/%d/image", w.ID),
			Duration:    w.Duration,
			Color:       w.Color,
			BgColor:     w.BgColor,
			CreatedAt:   w.CreatedAt,
		})
	}
	success(c, http.StatusOK, "", out)
}

func (s *Server) handleWorkImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	img, ctype, err := s.works.GetImage(c.Request.Context(), id)
	if err != nil {
		s.failErr(c, err)
		return
	}
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	c.Data(http.StatusOK, ctype, img)
}

func (s *Server) handleCreateWork(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "expected multipart form data")
		return
	}

	first := func(field string) string {
		if vs := form.Value[field]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	categoryID, err := strconv.Atoi(first("categoryId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "categoryId must be a number between 1 and 9")
		return
	}

	files := form.File["image"]
	if len(files) != 1 {
		fail(c, http.StatusBadRequest, "exactly one image file is required")
		return
	}
	f, err := files[0].Open()
	if err != nil {
		s.failErr(c, err)
		return
	}
	defer f.Close()
	img, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxImageBytes+1))
	if err != nil {
		s.failErr(c, err)
		return
	}

	nw := model.NewWork{
		Title:       first("title"),
		Client:      first("client"),
		Description: first("description"),
		CategoryID:  categoryID,
		Results:     formArray(form.Value, "results"),
		Tech:        formArray(form.Value, "tech"),
		Image:       img,
		ImageType:   files[0].Header.Get("Content-Type"),
		Duration:    first("duration"),
		Color:       first("color"),
		BgColor:     first("bgColor"),
	}

	id, err := s.works.Create(c.Request.Context(), nw)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, http.StatusCreated, "work created", gin.H{"id": id, "title": nw.Title})
}

func (s *Server) handleDeleteWork(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "id must be a number")
		return
	}
	deleted, err := s.works.Delete(c.Request.Context(), id)
	if err != nil {
		s.failErr(c, err)
		return
	}
	msg := "work deleted"
	if !deleted {
		msg = "nothing to delete"
	}
	success(c, http.StatusOK, msg, gin.H{"deleted": deleted})
}

// --- Inbox ---

type replyJSON struct {
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

type messageJSON struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Mobile      string     `json:"mobile,omitempty"`
	Description string     `json:"description"`
	Seen        bool       `json:"seen"`
	Reply       *replyJSON `json:"reply,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (s *Server) handleListMessages(c *gin.Context) {
	var opts model.ContactListOptions
	if v := c.Query("seen"); v != "" {
		seen, err := strconv.ParseBool(v)
		if err != nil {
			fail(c, http.StatusBadRequest, "seen must be true or false")
			return
		}
		opts.Seen = &seen
	}
	opts.Limit, _ = strconv.Atoi(c.Query("limit"))
	opts.Offset, _ = strconv.Atoi(c.Query("offset"))

	msgs, err := s.contact.List(c.Request.Context(), opts)
	if err != nil {
		s.failErr(c, err)
		return
	}
	out := make([]messageJSON, 0, len(msgs))
	for _, m := range msgs {
		mj := messageJSON{
			ID:          m.ID.String(),
			Name:        m.Name,
			Email:       m.Email,
			Mobile:      m.Mobile,
			Description: m.Description,
			Seen:        m.Seen,
			CreatedAt:   m.CreatedAt,
		}
		if m.Reply != nil {
			mj.Reply = &replyJSON{Subject: m.Reply.Subject, Body: m.Reply.Body, SentAt: m.Reply.SentAt}
		}
		out = append(out, mj)
	}
	success(c, http.StatusOK, "", out)
}

func (s *Server) handleMarkSeen(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	if err := s.contact.MarkSeen(c.Request.Context(), id); err != nil {
		s.failErr(c, err)
		return
	}
	success(c, http.StatusOK, "marked as seen", nil)
}

type replyRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

func (s *Server) handleReply(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "subject and body are required")
		return
	}
	if err := s.contact.Reply(c.Request.Context(), id, req.Subject, req.Body); err != nil {
		s.failErr(c, err)
		return
	}
	success(c, http.StatusOK, "reply sent", nil)
}
