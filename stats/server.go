package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayoisaiah/momentum/internal/activity"
	"github.com/ayoisaiah/momentum/internal/apperr"
	"github.com/ayoisaiah/momentum/internal/dashboard"
	"github.com/ayoisaiah/momentum/internal/logging"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/streak"
)

const (
	userHeader      = "X-User-ID"
	userKey         = "user"
	shutdownTimeout = 5 * time.Second
)

var errMalformedBody = &apperr.Error{
	Kind:    apperr.KindValidation,
	Message: "malformed request body",
}

var errInvalidWeeksParam = &apperr.Error{
	Kind:    apperr.KindValidation,
	Message: "weeks must be a whole number, got %q",
}

// Deps are the services the API exposes.
type Deps struct {
	Sessions *session.Service
	Engine   *Engine
	Composer *dashboard.Composer
	// DefaultUser is used when a request carries no X-User-ID header.
	DefaultUser string
	// DefaultMinutes is the session length when a start request omits it.
	DefaultMinutes int
	// DefaultWeeks is the heatmap size when a request omits it.
	DefaultWeeks int
}

// Server is the momentum HTTP API.
type Server struct {
	deps   Deps
	router *gin.Engine
}

type startRequest struct {
	DurationMinutes *int   `json:"duration_minutes"`
	Task            string `json:"task"`
}

type sessionResponse struct {
	*session.Session
	RemainingSeconds int `json:"remaining_seconds"`
}

type streakResponse struct {
	Source activity.Source `json:"source"`
	streak.Result
}

// NewServer creates the API server and registers its routes.
func NewServer(deps Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		deps:   deps,
		router: router,
	}

	api := router.Group("/api", s.identify)
	{
		api.POST("/sessions", s.handleStart)
		api.GET("/sessions/current", s.handleCurrent)
		api.POST("/sessions/:id/pause", s.handleTransition(deps.Sessions.Pause))
		api.POST("/sessions/:id/resume", s.handleTransition(deps.Sessions.Resume))
		api.POST("/sessions/:id/complete", s.handleTransition(deps.Sessions.Complete))
		api.POST("/sessions/:id/cancel", s.handleTransition(deps.Sessions.Cancel))
		api.GET("/streak", s.handleStreak)
		api.GET("/streaks", s.handleStreaks)
		api.GET("/heatmap", s.handleHeatmap)
		api.GET("/dashboard", s.handleDashboard)
	}

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.InfoContext(ctx, "api server listening", slog.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		slog.InfoContext(
			c.Request.Context(),
			"api request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// identify resolves the user the request acts for.
func (s *Server) identify(c *gin.Context) {
	user := c.GetHeader(userHeader)
	if user == "" {
		user = s.deps.DefaultUser
	}

	c.Set(userKey, user)
	c.Next()
}

func statusFor(err error) int {
	switch {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsConflict(err):
		return http.StatusConflict
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "api request failed", slog.Any("error", err))

		msg = http.StatusText(status)
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": msg,
		"kind":  apperr.KindOf(err).String(),
	})
}

func (s *Server) respondSession(c *gin.Context, status int, sess *session.Session) {
	c.JSON(status, sessionResponse{
		Session:          sess,
		RemainingSeconds: sess.Remaining(s.deps.Sessions.Now()),
	})
}

func (s *Server) handleStart(c *gin.Context) {
	var req startRequest

	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, errMalformedBody.Wrap(err))
		return
	}

	slog.DebugContext(c.Request.Context(), "start request", slog.String("body", logging.Dump(req)))

	minutes := s.deps.DefaultMinutes
	if req.DurationMinutes != nil {
		minutes = *req.DurationMinutes
	}

	sess, err := s.deps.Sessions.Start(c.Request.Context(), c.GetString(userKey), minutes, req.Task)
	if err != nil {
		writeError(c, err)
		return
	}

	s.respondSession(c, http.StatusCreated, sess)
}

func (s *Server) handleCurrent(c *gin.Context) {
	sess, err := s.deps.Sessions.Current(c.Request.Context(), c.GetString(userKey))
	if err != nil {
		writeError(c, err)
		return
	}

	s.respondSession(c, http.StatusOK, sess)
}

type transitionFunc func(ctx context.Context, userID, id string) (*session.Session, error)

func (s *Server) handleTransition(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := fn(c.Request.Context(), c.GetString(userKey), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}

		s.respondSession(c, http.StatusOK, sess)
	}
}

func (s *Server) handleStreak(c *gin.Context) {
	src, err := activity.ParseSource(c.Query("source"))
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := s.deps.Engine.Streak(c.Request.Context(), c.GetString(userKey), src)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, streakResponse{Source: src, Result: result})
}

func (s *Server) handleStreaks(c *gin.Context) {
	results, err := s.deps.Engine.Streaks(c.Request.Context(), c.GetString(userKey))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (s *Server) handleHeatmap(c *gin.Context) {
	weeks := s.deps.DefaultWeeks

	if v := c.Query("weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, errInvalidWeeksParam.Fmt(v))
			return
		}

		weeks = n
	}

	days, err := s.deps.Engine.Heatmap(c.Request.Context(), c.GetString(userKey), weeks)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weeks": weeks,
		"days":  days,
	})
}

func (s *Server) handleDashboard(c *gin.Context) {
	summary, err := s.deps.Composer.Compose(c.Request.Context(), c.GetString(userKey))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
