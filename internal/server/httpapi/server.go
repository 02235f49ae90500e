// Package httpapi exposes the agency backend as a JSON HTTP API.
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexel-studio/agency-api/internal/config"
	"github.com/nexel-studio/agency-api/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth    service.AuthService
	works   service.WorkService
	contact service.ContactService
	cfg     *config.Config
	logger  *zap.Logger
}

// New constructs a server with injected services.
func New(cfg *config.Config, auth service.AuthService, works service.WorkService, contact service.ContactService, logger *zap.Logger) *Server {
	return &Server{auth: auth, works: works, contact: contact, cfg: cfg, logger: logger}
}

// Router builds the gin engine with middleware and all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = s.cfg.MaxImageBytes
	r.Use(
		Recovery(s.logger),
		RequestLogger(s.logger),
		cors.New(cors.Config{
			AllowOrigins: s.cfg.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		}),
	)

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Public routes.
	r.POST("/register", s.handleRegister)
	r.POST("/login", s.handleLogin)
	r.POST("/send-contact-mail", s.handleSendContactMail)
	r.GET("/get-our-works", s.handleListWorks)
	r.GET("/get-our-works/:id/image", s.handleWorkImage)

	// Back-office routes. Delete requires the same token as create; the
	// unauthenticated delete in the legacy backend was an oversight.
	protected := r.Group("/", AuthRequired([]byte(s.cfg.JWTSecret)))
	{
		protected.POST("/post-our-works", s.handleCreateWork)
		protected.DELETE("/delete-work", s.handleDeleteWork)
		protected.GET("/messages", s.handleListMessages)
		protected.POST("/messages/:id/seen", s.handleMarkSeen)
		protected.POST("/messages/:id/reply", s.handleReply)
	}

	return r
}
