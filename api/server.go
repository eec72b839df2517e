// Package api exposes the session store and the content-analysis
// pipeline over HTTP.
package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"echochamber/auth"
	"echochamber/common"
	"echochamber/generate"
	"echochamber/workflow"
)

// Server bundles the dependencies the controllers need.
type Server struct {
	auth    *auth.Service
	builder *generate.Builder

	// Optional artifact store for published bundles.
	s3       *common.S3
	s3Bucket string
	s3Prefix string

	// One workflow runner per user, created lazily. The runner's state
	// manager enforces one outstanding generation call per user.
	mu      sync.Mutex
	runners map[string]*workflow.Runner
}

// Config carries optional server wiring.
type Config struct {
	S3       *common.S3
	S3Bucket string
	S3Prefix string
}

// NewServer creates a Server over the auth service and request builder.
func NewServer(authSvc *auth.Service, builder *generate.Builder, cfg Config) *Server {
	return &Server{
		auth:     authSvc,
		builder:  builder,
		s3:       cfg.S3,
		s3Bucket: cfg.S3Bucket,
		s3Prefix: cfg.S3Prefix,
		runners:  make(map[string]*workflow.Runner),
	}
}

// runnerFor returns the user's workflow runner, creating it on first use.
func (s *Server) runnerFor(userID string) *workflow.Runner {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runners[userID]
	if !ok {
		r = workflow.NewRunner(workflow.NewManager(), s.builder)
		s.runners[userID] = r
	}
	return r
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)
	s.RegisterAuthRoutes(r)
	s.RegisterGenerateRoutes(r)
	return r
}
