package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zomujo/telemed-api/internal/email"
	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
)

// Notifier delivers a notification to one user, live or deferred.
type Notifier interface {
	Send(ctx context.Context, notify *model.Notify) error
}

// ReminderWorker nudges patients about follow-up visits scheduled for today.
type ReminderWorker struct {
	visits   repository.FutureVisitRepository
	users    repository.UserRepository
	email    email.Service
	notifier Notifier
	interval time.Duration
	logger   zerolog.Logger
}

func NewReminderWorker(
	visits repository.FutureVisitRepository,
	users repository.UserRepository,
	mail email.Service,
	notifier Notifier,
	interval time.Duration,
	logger zerolog.Logger,
) *ReminderWorker {
	return &ReminderWorker{
		visits:   visits,
		users:    users,
		email:    mail,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.remind(ctx); err != nil {
				w.logger.Error().Err(err).Msg("reminder run failed")
			}
		}
	}
}

func (w *ReminderWorker) remind(ctx context.Context) error {
	visits, err := w.visits.ListDueOn(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to list due visits: %w", err)
	}

	for _, visit := range visits {
		patient, err := w.users.Get(ctx, visit.PatientID)
		if err != nil {
			w.logger.Error().Err(err).Str("patient_id", visit.PatientID.String()).Msg("failed to load patient for reminder")
			continue
		}

		if err := w.notifier.Send(ctx, &model.Notify{
			ReceiverID: patient.ID,
			Payload: model.NotificationPayload{
				Topic:   "visit_reminder",
				Message: visit.Message,
			},
		}); err != nil {
			w.logger.Error().Err(err).Str("patient_id", patient.ID.String()).Msg("failed to send reminder notification")
		}

		if err := w.email.SendCustom(ctx, patient.Email, "Upcoming visit reminder", visit.Message); err != nil {
			w.logger.Error().Err(err).Str("to", patient.Email).Msg("failed to send reminder email")
		}
	}
	return nil
}
