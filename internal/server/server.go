// Package server exposes the fill engine as an HTTP service: submit a
// grid and dictionary, poll or stream the resulting job, fetch recent
// history. It is the solve-only counterpart of the teacher's
// multiplayer API, built on the same gin router and auth middleware.
package server

import (
	"net/http"
	"time"

	"github.com/crossplay/fillengine/internal/auth"
	"github.com/crossplay/fillengine/internal/jobs"
	"github.com/crossplay/fillengine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ScopeSolve is the token scope required to submit and read solve jobs.
const ScopeSolve = "solve"

// Server wires the solve job service into a gin router.
type Server struct {
	jobs       *jobs.Service
	auth       *auth.AuthService
	middleware *middleware.AuthMiddleware
}

// New builds a Server over the given job service and auth service.
func New(jobService *jobs.Service, authService *auth.AuthService) *Server {
	return &Server{
		jobs:       jobService,
		auth:       authService,
		middleware: middleware.NewAuthMiddleware(authService),
	}
}

// Router builds the gin engine with every route this service exposes.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.PerformanceMonitor())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.GetMetrics())
	})

	router.POST("/auth/token", s.IssueToken)

	solveGroup := router.Group("/")
	solveGroup.Use(s.middleware.RequireScope(ScopeSolve))
	{
		solveGroup.POST("/solve", s.Solve)
		solveGroup.GET("/jobs", s.ListJobs)
		solveGroup.GET("/jobs/:id", s.GetJob)
	}

	// The streaming endpoint is a WebSocket upgrade: browsers can't set
	// an Authorization header on the handshake request, so the token
	// travels as a query parameter and is checked inline instead of
	// through RequireScope, matching how the teacher's realtime hub
	// authenticates its WebSocket route.
	router.GET("/solve/stream", s.StreamSolve)

	return router
}
