package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/endpointprobe/internal/config"
	"github.com/hamed0406/endpointprobe/internal/domain"
	"github.com/hamed0406/endpointprobe/internal/httpapi/middleware"
	"github.com/hamed0406/endpointprobe/internal/notify"
	"github.com/hamed0406/endpointprobe/internal/probe"
	"github.com/hamed0406/endpointprobe/internal/report"
	"github.com/hamed0406/endpointprobe/internal/runner"
)

// Server exposes the probe runner over HTTP. The target list can be
// swapped at runtime (config hot reload); everything else is fixed at
// startup.
type Server struct {
	Logger   *zap.Logger
	Cfg      config.Config
	Prober   probe.Prober
	Notifier notify.Notifier

	mu      sync.RWMutex
	targets []domain.Target
}

func NewServer(l *zap.Logger, cfg config.Config, p probe.Prober, n notify.Notifier) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{
		Logger:   l,
		Cfg:      cfg,
		Prober:   p,
		Notifier: n,
		targets:  cfg.TargetList(),
	}
}

// UpdateTargets replaces the probe sequence; safe to call while serving.
func (s *Server) UpdateTargets(targets []domain.Target) {
	s.mu.Lock()
	s.targets = targets
	s.mu.Unlock()
	s.Logger.Info("targets_updated", zap.Int("count", len(targets)))
}

func (s *Server) snapshotTargets() []domain.Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Target, len(s.targets))
	copy(out, s.targets)
	return out
}

func (s *Server) Router() http.Handler {
	keys := middleware.APIKeys{
		Read:    s.Cfg.ReadAPIKeys,
		Trigger: s.Cfg.TriggerAPIKeys,
	}

	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRead(keys))
		r.Get("/api/targets", s.handleListTargets)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTrigger(keys))
		r.Use(middleware.RateLimit(s.Cfg.ProbeRPM, s.Cfg.ProbeBurst))
		r.Post("/api/probe", s.handleRunProbes)
	})

	return r
}

func (s *Server) handleListTargets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotTargets())
}

// handleRunProbes runs the sequential probe pass and streams the text
// report back as the response body. Targets are probed one at a time in
// order, same as the CLI.
func (s *Server) handleRunProbes(w http.ResponseWriter, r *http.Request) {
	targets := s.snapshotTargets()

	sink := report.NewTextSink(w)
	sink.PreviewLimit = s.Cfg.PreviewLimit

	run := runner.New(s.Logger, s.Prober, sink, s.Cfg.Timeout)
	run.DiagnoseDNS = s.Cfg.DiagnoseDNS

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	results, err := run.Run(r.Context(), targets)
	if err != nil {
		// response writer failed mid-run; nothing useful left to send
		s.Logger.Warn("probe_report_write_error", zap.Error(err))
		return
	}

	if sum, bad := notify.Summarize(results); bad && s.Notifier != nil {
		if err := s.Notifier.Send(r.Context(), sum); err != nil {
			s.Logger.Warn("notify_error", zap.Error(err))
		}
	}

	s.Logger.Info("probe_run_complete",
		zap.Int("targets", len(targets)),
		zap.Int("results", len(results)),
	)
}
