// Package receiver is a stand-in for the image server. It enforces the same
// size limit and content types but stores nothing.
package receiver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/moyoez/imgup/tool"
	"github.com/moyoez/imgup/types"
)

// Server represents the HTTP server for the upload stub
type Server struct {
	addr      string
	limit     int64
	fieldName string
	server    *http.Server
	mu        sync.RWMutex
}

// NewServer creates a stub listening on addr that accepts bodies up to sizeLimitMB.
func NewServer(addr string, sizeLimitMB int, fieldName string) *Server {
	if sizeLimitMB <= 0 {
		sizeLimitMB = 10
	}
	if fieldName == "" {
		fieldName = types.FieldNameSingle
	}
	return &Server{
		addr:      addr,
		limit:     int64(sizeLimitMB) * 1024 * 1024,
		fieldName: fieldName,
	}
}

// Router builds the gin engine. It is exported so tests can drive it with httptest.
func (s *Server) Router() *gin.Engine {
	switch {
	case gin.Mode() == gin.TestMode:
	case tool.DefaultLogger.GetLevel() == log.DebugLevel:
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	uploadCtrl := NewUploadController(s.fieldName)
	api := engine.Group("/api")
	{
		api.POST("/upload", LimitBodySize(s.limit), uploadCtrl.HandleUpload)
	}
	return engine
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}
	srv := s.server
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting upload stub on %s (limit %d bytes, field %q)", s.addr, s.limit, s.fieldName)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("upload stub stopped: %v", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
