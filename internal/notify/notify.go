package notify

import (
	"context"
	"log/slog"

	"outreach/internal/observability"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notice is an operator-facing message: a toast in the dashboard, a log
// line or an event here. Delivery is fire-and-forget; nothing consumes
// a return value.
type Notice struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

type Sink interface {
	Notify(ctx context.Context, n Notice)
}

// Log writes notices to slog. The default sink for every binary.
type Log struct {
	Logger *slog.Logger
}

func (l *Log) Notify(ctx context.Context, n Notice) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observability.Notices.WithLabelValues(string(n.Severity)).Inc()
	if n.Severity == SeverityError {
		logger.Error("notice", "title", n.Title, "description", n.Description)
		return
	}
	logger.Info("notice", "title", n.Title, "description", n.Description)
}

// Fanout delivers a notice to every sink in order.
type Fanout []Sink

func (f Fanout) Notify(ctx context.Context, n Notice) {
	for _, s := range f {
		s.Notify(ctx, n)
	}
}
