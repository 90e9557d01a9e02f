package service

import (
	"context"
	"errors"
	"time"

	"github.com/Spok95/inventory-tracker/internal/domain/alerts"
	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/notify"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
	"github.com/Spok95/inventory-tracker/internal/rules"
)

type AlertService struct {
	base
	materials MaterialStore
	alerts    AlertStore
	engine    *rules.Engine
}

// CheckResult separates alerts written, alerts skipped because an equivalent
// one is pending, and alerts the store failed to write.
type CheckResult struct {
	Created []alerts.Alert `json:"created"`
	Skipped []rules.Skip   `json:"skipped"`
	Failed  []alerts.Alert `json:"failed"`
}

// Check reloads materials and pending alerts, evaluates the rules and
// persists every new alert independently. A failed write does not stop the
// others; all failures come back joined in the error.
func (s *AlertService) Check(ctx context.Context) (CheckResult, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.CheckDuration.Observe(time.Since(start).Seconds())
		}
	}()

	lctx, cancel := s.withTimeout(ctx)
	mats, err := s.materials.List(lctx)
	cancel()
	if err != nil {
		return CheckResult{}, storeErr("list materials", err)
	}
	pending, err := s.pending(ctx)
	if err != nil {
		return CheckResult{}, err
	}

	return s.persist(ctx, s.engine.Evaluate(mats, pending))
}

// RaiseForDefect creates a defect alert for high and critical defects.
func (s *AlertService) RaiseForDefect(ctx context.Context, d defects.Defect) (CheckResult, error) {
	pending, err := s.pending(ctx)
	if err != nil {
		return CheckResult{}, err
	}
	return s.persist(ctx, s.engine.EvaluateDefect(d, pending))
}

func (s *AlertService) pending(ctx context.Context) ([]alerts.Alert, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.alerts.ListUnacknowledged(ctx)
	return out, storeErr("list unacknowledged alerts", err)
}

func (s *AlertService) persist(ctx context.Context, res rules.Result) (CheckResult, error) {
	out := CheckResult{Skipped: res.Skipped}
	var errs []error

	for _, a := range res.Created {
		pctx, cancel := s.withTimeout(ctx)
		ok, err := s.alerts.Put(pctx, a)
		cancel()

		switch {
		case err != nil:
			out.Failed = append(out.Failed, a)
			errs = append(errs, err)
			s.log.Error("alert not persisted", "key", a.DedupKey(), "err", err)
			if s.metrics != nil {
				s.metrics.AlertPersistFailed.WithLabelValues(string(a.Type)).Inc()
			}
		case !ok:
			// another writer created the same alert after our read
			out.Skipped = append(out.Skipped, rules.Skip{Key: a.DedupKey(), Type: a.Type, MaterialCode: a.MaterialCode})
		default:
			out.Created = append(out.Created, a)
		}
	}

	for _, sk := range out.Skipped {
		s.log.Debug("alert dedup skipped", "key", sk.Key)
		if s.metrics != nil {
			s.metrics.AlertsSkipped.WithLabelValues(string(sk.Type)).Inc()
		}
	}
	for _, a := range out.Created {
		s.log.Info("alert created", "key", a.DedupKey(), "severity", a.Severity)
		if s.metrics != nil {
			s.metrics.AlertsCreated.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
		}
		s.notify(ctx, notify.AlertEvent(a))
	}

	if len(errs) > 0 {
		return out, apperrors.Persistence("put alerts", errors.Join(errs...))
	}
	return out, nil
}

// List returns every alert, or only pending ones.
func (s *AlertService) List(ctx context.Context, onlyPending bool) ([]alerts.Alert, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if onlyPending {
		out, err := s.alerts.ListUnacknowledged(ctx)
		return out, storeErr("list unacknowledged alerts", err)
	}
	out, err := s.alerts.List(ctx)
	return out, storeErr("list alerts", err)
}

func (s *AlertService) Acknowledge(ctx context.Context, actor Actor, id string) error {
	if err := authorize(actor, users.CanAcknowledgeAlerts, "acknowledge alerts"); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return storeErr("acknowledge alert", s.alerts.Acknowledge(ctx, id))
}

func (s *AlertService) AcknowledgeAll(ctx context.Context, actor Actor) (int64, error) {
	if err := authorize(actor, users.CanAcknowledgeAlerts, "acknowledge alerts"); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	n, err := s.alerts.AcknowledgeAll(ctx)
	return n, storeErr("acknowledge all alerts", err)
}

func (s *AlertService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := authorize(actor, users.CanDeleteRecords, "delete alerts"); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return storeErr("delete alert", s.alerts.Delete(ctx, id))
}

func (s *AlertService) ClearAcknowledged(ctx context.Context, actor Actor) (int64, error) {
	if err := authorize(actor, users.CanDeleteRecords, "clear alerts"); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	n, err := s.alerts.ClearAcknowledged(ctx)
	return n, storeErr("clear acknowledged alerts", err)
}

func (s *AlertService) ClearAll(ctx context.Context, actor Actor) (int64, error) {
	if err := authorize(actor, users.CanDeleteRecords, "clear alerts"); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	n, err := s.alerts.ClearAll(ctx)
	return n, storeErr("clear alerts", err)
}
