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

// ConsultationSweeper ends active consultations that have been open too
// long, usually because the doctor closed the browser without finishing.
// Paired appointments are left alone.
type ConsultationSweeper struct {
	records  repository.RecordRepository
	interval time.Duration
	maxAge   time.Duration
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewConsultationSweeper(records repository.RecordRepository, interval, maxAge time.Duration, m *metrics.Metrics, logger zerolog.Logger) *ConsultationSweeper {
	return &ConsultationSweeper{
		records:  records,
		interval: interval,
		maxAge:   maxAge,
		metrics:  m,
		logger:   logger,
	}
}

func (w *ConsultationSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				w.metrics.SweepErrors.WithLabelValues("consultation").Inc()
				w.logger.Error().Err(err).Msg("consultation sweep failed")
			}
		}
	}
}

func (w *ConsultationSweeper) sweep(ctx context.Context) error {
	active, err := w.records.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active consultations: %w", err)
	}

	now := time.Now()
	for _, record := range active {
		if now.Sub(record.CreatedAt) < w.maxAge {
			continue
		}

		record.Status = model.RecordStatusEnded
		record.ReasonEnded = model.ReasonEndedAuto
		if err := w.records.Update(ctx, record); err != nil {
			w.metrics.SweepErrors.WithLabelValues("consultation").Inc()
			w.logger.Error().Err(err).Str("consultation_id", record.ID.String()).Msg("failed to close stale consultation")
			continue
		}
		w.metrics.ConsultationsAutoClosed.Inc()
		w.logger.Info().Str("consultation_id", record.ID.String()).Msg("closed stale consultation")
	}
	return nil
}
