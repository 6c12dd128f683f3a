// Package server exposes the notification agenda over a small HTTP API:
// upcoming notifications, today's notifications, the next-due countdown,
// and a health check.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/smsmy/farm-notifier/internal/agenda"
	"github.com/smsmy/farm-notifier/internal/messages"
	"github.com/smsmy/farm-notifier/internal/schedule"
)

// countdownLookaheadDays bounds the window scanned for the next
// notification on the countdown endpoint.
const countdownLookaheadDays = 7

// WeatherSource yields the current condition snapshot, or nil when
// weather data is unavailable.
type WeatherSource interface {
	Report(ctx context.Context) *schedule.WeatherReport
}

// Pinger checks a backing dependency's health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server serves the notification API.
type Server struct {
	httpServer  *http.Server
	builder     *agenda.Builder
	weather     WeatherSource
	store       Pinger
	logger      *slog.Logger
	location    *time.Location
	now         func() time.Time
	defaultDays int
	maxDays     int
}

// Options configures a Server beyond its required dependencies.
type Options struct {
	// Location is the farm's wall-clock timezone; defaults to UTC.
	Location *time.Location

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	// DefaultDays is the horizon used when the request has no days
	// parameter.
	DefaultDays int
}

// New builds the API server listening on addr.
func New(addr string, builder *agenda.Builder, weather WeatherSource, store Pinger, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultDays <= 0 {
		opts.DefaultDays = 30
	}

	s := &Server{
		builder:     builder,
		weather:     weather,
		store:       store,
		logger:      logger.With("component", "api_server"),
		location:    opts.Location,
		now:         opts.Now,
		defaultDays: opts.DefaultDays,
		maxDays:     agenda.MaxHorizonDays,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notifications/next", s.handleNext)
	mux.HandleFunc("GET /api/notifications/today", s.handleToday)
	mux.HandleFunc("GET /api/notifications/countdown", s.handleCountdown)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown failed: %w", err)
	}
	s.logger.Info("API server stopped gracefully")
	return <-errCh
}

// Handler exposes the server's HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	days := s.defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > s.maxDays {
			s.writeError(w, http.StatusBadRequest,
				fmt.Sprintf("days must be an integer between 1 and %d", s.maxDays))
			return
		}
		days = parsed
	}

	now := s.now().In(s.location)
	payloads, err := s.build(r.Context(), now, days)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"notifications": decorate(payloads),
		"count":         len(payloads),
	})
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	now := s.now().In(s.location)
	payloads, err := s.build(r.Context(), now, 1)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"notifications": decorate(payloads),
		"count":         len(payloads),
		"date":          schedule.DateOf(now).String(),
	})
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	now := s.now().In(s.location)
	payloads, err := s.build(r.Context(), now, countdownLookaheadDays)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	next := agenda.NextDue(payloads, now)
	if next == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"success":           true,
			"next_notification": nil,
			"message_ar":        "لا توجد إشعارات مجدولة خلال الأسبوع القادم",
			"message_bn":        "আগামী সপ্তাহে কোনো বিজ্ঞপ্তি নির্ধারিত নেই",
		})
		return
	}

	countdown := agenda.NewCountdown(next.At, now)
	titleAR, titleBN := messages.Title(*next)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"next_notification": messages.FeedNotification{
			TaskPayload: *next,
			TitleAR:     titleAR,
			TitleBN:     titleBN,
			Icon:        messages.Icon(next.Kind),
		},
		"countdown":    countdown,
		"current_time": now,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"success": false,
				"error":   "database unreachable",
			})
			return
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Farm Notifier API is running",
		"timestamp": s.now().In(s.location),
	})
}

// build runs the agenda builder for the window starting today, using a
// fresh weather snapshot.
func (s *Server) build(ctx context.Context, now time.Time, days int) ([]agenda.TaskPayload, error) {
	report := s.weather.Report(ctx)
	payloads, err := s.builder.Build(ctx, schedule.DateOf(now), days, report)
	if err != nil {
		return nil, fmt.Errorf("failed to build agenda: %w", err)
	}
	return payloads, nil
}

// decorate attaches titles and icons the way the published feed does.
func decorate(payloads []agenda.TaskPayload) []messages.FeedNotification {
	out := make([]messages.FeedNotification, 0, len(payloads))
	for _, p := range payloads {
		ar, bn := messages.Title(p)
		out = append(out, messages.FeedNotification{
			TaskPayload: p,
			TitleAR:     ar,
			TitleBN:     bn,
			Icon:        messages.Icon(p.Kind),
		})
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}
