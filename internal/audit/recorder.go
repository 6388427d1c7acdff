// Package audit records resource change events consumed from Kafka.
package audit

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Recorder struct {
	log    *zap.Logger
	events *prometheus.CounterVec
}

// NewRecorder registers its counter with reg.
func NewRecorder(log *zap.Logger, reg prometheus.Registerer) (*Recorder, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightdesk_audit_events_total",
		Help: "Resource change events written to the audit log",
	}, []string{"resource", "type"})
	if err := reg.Register(events); err != nil {
		return nil, fmt.Errorf("register audit metrics: %w", err)
	}
	return &Recorder{log: log, events: events}, nil
}

func (r *Recorder) Record(ctx context.Context, event kafka.ResourceEvent) error {
	if event.Type == "" || event.Resource == "" {
		r.log.Warn("skipping malformed event", zap.String("id", event.ID))
		return nil
	}

	actor := event.Actor
	if actor == "" {
		actor = "unknown"
	}
	r.log.Info("resource changed",
		zap.String("event_id", event.ID),
		zap.String("type", event.Type),
		zap.String("resource", event.Resource),
		zap.Int64("resource_id", event.ResourceID),
		zap.String("actor", actor),
		zap.Time("occurred_at", event.OccurredAt))
	r.events.WithLabelValues(event.Resource, event.Type).Inc()
	return nil
}
