// Package audit provides the production AuditSink: structured log lines for
// every rendered view, user action and outbound API call, plus Prometheus
// counters for the same events.
package audit

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// titleSnippetLen caps the screen title carried in log lines; titles are
// templated and can get long.
const titleSnippetLen = 60

// Sink implements ports.AuditSink.
type Sink struct {
	logger *slog.Logger

	viewsRendered *prometheus.CounterVec
	userActions   prometheus.Counter
	apiCalls      *prometheus.CounterVec
	errs          prometheus.Counter
}

// New creates a Sink logging through logger and registering its metrics on
// reg. Pass prometheus.DefaultRegisterer outside of tests.
func New(logger *slog.Logger, reg prometheus.Registerer) *Sink {
	s := &Sink{
		logger: logger,
		viewsRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menuflow_views_rendered_total",
				Help: "Total number of rendered views",
			},
			[]string{"screen_id"},
		),
		userActions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "menuflow_user_actions_total",
				Help: "Total number of applied user actions",
			},
		),
		apiCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menuflow_api_calls_total",
				Help: "Total number of outbound data-source calls",
			},
			[]string{"method"},
		),
		errs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "menuflow_errors_total",
				Help: "Total number of audited engine errors",
			},
		),
	}
	reg.MustRegister(s.viewsRendered, s.userActions, s.apiCalls, s.errs)
	return s
}

func (s *Sink) ViewRendered(userID, screenID, title string) {
	s.logger.Info("view rendered",
		"user_id", userID,
		"screen_id", screenID,
		"title", snippet(title),
	)
	s.viewsRendered.WithLabelValues(screenID).Inc()
}

func (s *Sink) UserAction(userID, actionID, label string) {
	s.logger.Info("user action",
		"user_id", userID,
		"action_id", actionID,
		"label", label,
	)
	s.userActions.Inc()
}

func (s *Sink) APICall(url, method string) {
	s.logger.Info("api call", "url", url, "method", method)
	s.apiCalls.WithLabelValues(method).Inc()
}

func (s *Sink) Error(message string) {
	s.logger.Error("engine error", "err", message)
	s.errs.Inc()
}

func snippet(s string) string {
	if len(s) <= titleSnippetLen {
		return s
	}
	return s[:titleSnippetLen] + "..."
}
