// Package server exposes the questionnaire and the assessment pipeline over
// HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/moodcheck/internal/assessment"
	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/questionnaire"
	"github.com/abhisek/moodcheck/internal/store"
)

// Assessor runs one assessment. *assessment.Service implements it.
type Assessor interface {
	Assess(ctx context.Context, rs encoder.ResponseSet) (*assessment.Result, error)
}

// Options configures a Server.
type Options struct {
	// CORSOrigins lists allowed origins. Empty allows all.
	CORSOrigins []string

	// Repo backs the history endpoints. Nil disables them (404).
	Repo store.AssessmentRepo
}

// Server holds the HTTP handlers.
type Server struct {
	qn       *questionnaire.Questionnaire
	assessor Assessor
	opts     Options
}

// New creates a Server.
func New(qn *questionnaire.Questionnaire, assessor Assessor, opts Options) *Server {
	return &Server{qn: qn, assessor: assessor, opts: opts}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(s.corsMiddleware())

	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/questions", s.listQuestions)
		v1.POST("/assessments", s.createAssessment)
		v1.GET("/assessments", s.listAssessments)
		v1.GET("/assessments/:id", s.getAssessment)
	}
	return r
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	if len(s.opts.CORSOrigins) == 0 {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = s.opts.CORSOrigins
	return cors.New(cfg)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
