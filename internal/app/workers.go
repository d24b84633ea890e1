package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/service/clinical"
	"github.com/Alijeyrad/glycare/pkg/observability"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc     fx.Lifecycle
	NC     *nats.Conn `optional:"true"`
	Logger *slog.Logger
}

func RegisterWorkers(p WorkerParams) {
	if p.NC == nil {
		p.Logger.Info("NATS not configured, record workers disabled")
		return
	}

	var sub *nats.Subscription
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			counter, err := observability.NewAlertCounter()
			if err != nil {
				return err
			}
			sub, err = startAlertWorker(p.NC, counter, p.Logger)
			return err
		},
		OnStop: func(ctx context.Context) error {
			// The connection itself is drained by ProvideNatsClient.
			if sub == nil {
				return nil
			}
			return sub.Unsubscribe()
		},
	})
}

// ---------------------------------------------------------------------------
// alert_worker
// ---------------------------------------------------------------------------

func startAlertWorker(nc *nats.Conn, counter *observability.AlertCounter, logger *slog.Logger) (*nats.Subscription, error) {
	subject := clinical.Subject(domain.BloodSugar.Name, "*", "*")
	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		if _, err := handleBloodSugarEvent(context.Background(), msg.Data, counter, logger); err != nil {
			logger.Warn("alert_worker: bad event", "subject", msg.Subject, "err", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("alert_worker: subscribe %s: %w", subject, err)
	}
	return sub, nil
}

// handleBloodSugarEvent counts and logs a created or updated measurement
// that falls outside the normal range. It reports whether it alerted.
func handleBloodSugarEvent(ctx context.Context, data []byte, counter *observability.AlertCounter, logger *slog.Logger) (bool, error) {
	var ev clinical.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return false, err
	}
	if ev.Op == clinical.OpDeleted {
		return false, nil
	}

	var m domain.BloodSugarMeasurement
	if err := json.Unmarshal(ev.Record, &m); err != nil {
		return false, err
	}
	if !m.OutOfRange() {
		return false, nil
	}

	direction := "high"
	if m.Value < domain.BloodSugarLow {
		direction = "low"
	}
	counter.Record(ctx, direction)
	logger.Warn("alert_worker: blood sugar out of range",
		"patient_id", m.ScopeID,
		"measurement_id", m.ID,
		"value", m.Value,
		"direction", direction,
		"measured_at", m.MeasuredAt,
	)
	return true, nil
}
