package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Spok95/inventory-tracker/internal/infra/metrics"
)

// Multi fans an event out to every channel in name order. A failing channel
// does not stop the others.
type Multi struct {
	channels map[string]Notifier
	names    []string
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// NewMulti accepts a nil m when metrics are disabled.
func NewMulti(log *slog.Logger, m *metrics.Metrics, channels map[string]Notifier) *Multi {
	names := make([]string, 0, len(channels))
	for n := range channels {
		names = append(names, n)
	}
	sort.Strings(names)
	return &Multi{channels: channels, names: names, log: log, metrics: m}
}

func (m *Multi) Len() int { return len(m.names) }

func (m *Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, name := range m.names {
		if err := m.channels[name].Notify(ctx, e); err != nil {
			m.log.Warn("notify failed", "channel", name, "kind", e.Kind, "err", err)
			if m.metrics != nil {
				m.metrics.NotifyFailed.WithLabelValues(name).Inc()
			}
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
