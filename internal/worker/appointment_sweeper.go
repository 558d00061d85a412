package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/metrics"
)

// expiryGrace is how long past its end time an accepted appointment may sit
// before the sweep cancels it.
const expiryGrace = 24 * time.Hour

// AppointmentSweeper cancels accepted appointments nobody followed through
// on. Slots stay unavailable; cancellation does not reopen them.
type AppointmentSweeper struct {
	appts    repository.AppointmentRepository
	interval time.Duration
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewAppointmentSweeper(appts repository.AppointmentRepository, interval time.Duration, m *metrics.Metrics, logger zerolog.Logger) *AppointmentSweeper {
	return &AppointmentSweeper{
		appts:    appts,
		interval: interval,
		metrics:  m,
		logger:   logger,
	}
}

func (w *AppointmentSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				w.metrics.SweepErrors.WithLabelValues("appointment").Inc()
				w.logger.Error().Err(err).Msg("appointment sweep failed")
			}
		}
	}
}

func (w *AppointmentSweeper) sweep(ctx context.Context) error {
	now := time.Now()

	// Fetch by date first; the precise end-time cutoff needs the per-row
	// wall-clock end and is applied below.
	candidates, err := w.appts.ListAcceptedBefore(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list expired candidates: %w", err)
	}

	for _, apt := range candidates {
		if now.Before(apt.EndsAt().Add(expiryGrace)) {
			continue
		}

		apt.Status = model.AppointmentStatusCancelled
		if err := w.appts.Update(ctx, apt); err != nil {
			w.metrics.SweepErrors.WithLabelValues("appointment").Inc()
			w.logger.Error().Err(err).Str("appointment_id", apt.ID.String()).Msg("failed to cancel expired appointment")
			continue
		}
		w.metrics.AppointmentsAutoCancelled.Inc()
		w.logger.Info().Str("appointment_id", apt.ID.String()).Msg("cancelled expired appointment")
	}
	return nil
}
