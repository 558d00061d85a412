package referral

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/errors"
)

type Notifier interface {
	Send(ctx context.Context, notify *model.Notify) error
}

type Service struct {
	referrals repository.ReferralRepository
	users     repository.UserRepository
	notifier  Notifier
	logger    zerolog.Logger
}

func NewService(referrals repository.ReferralRepository, users repository.UserRepository, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		referrals: referrals,
		users:     users,
		notifier:  notifier,
		logger:    logger,
	}
}

// Refer hands the patient off to another doctor. The receiving doctor is
// notified and can accept or decline.
func (s *Service) Refer(ctx context.Context, doctorID uuid.UUID, req *model.ReferPatientRequest) (*model.Referral, error) {
	if req.ReferredDoctorID == doctorID {
		return nil, errors.BadRequest("cannot refer a patient to yourself", nil)
	}

	referred, err := s.users.Get(ctx, req.ReferredDoctorID)
	if err != nil || referred.Role != model.RoleDoctor {
		return nil, errors.NotFound("doctor", err)
	}

	referral := &model.Referral{
		Base:             model.Base{ID: uuid.New()},
		DoctorID:         doctorID,
		ReferredDoctorID: req.ReferredDoctorID,
		PatientID:        req.PatientID,
		Status:           model.ReferralStatusPending,
	}
	if err := s.referrals.Create(ctx, referral); err != nil {
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	s.notify(ctx, referral.ReferredDoctorID, "referral_received",
		"A colleague referred a patient to you", doctorID)

	return referral, nil
}

// Accept moves the referral to accepted and notifies the referrer and the
// patient.
func (s *Service) Accept(ctx context.Context, doctorID, referralID uuid.UUID) (*model.Referral, error) {
	referral, err := s.resolve(ctx, doctorID, referralID)
	if err != nil {
		return nil, err
	}

	referral.Status = model.ReferralStatusAccepted
	if err := s.referrals.Update(ctx, referral); err != nil {
		return nil, fmt.Errorf("failed to accept referral: %w", err)
	}

	s.notify(ctx, referral.DoctorID, "referral_accepted",
		"Your referral was accepted", doctorID)
	s.notify(ctx, referral.PatientID, "referral_accepted",
		"You have been referred to a new doctor", doctorID)

	return referral, nil
}

// Decline moves the referral to declined and notifies the referrer.
func (s *Service) Decline(ctx context.Context, doctorID, referralID uuid.UUID) (*model.Referral, error) {
	referral, err := s.resolve(ctx, doctorID, referralID)
	if err != nil {
		return nil, err
	}

	referral.Status = model.ReferralStatusDeclined
	if err := s.referrals.Update(ctx, referral); err != nil {
		return nil, fmt.Errorf("failed to decline referral: %w", err)
	}

	s.notify(ctx, referral.DoctorID, "referral_declined",
		"Your referral was declined", doctorID)

	return referral, nil
}

// ListSent returns referrals the doctor made.
func (s *Service) ListSent(ctx context.Context, doctorID uuid.UUID, status model.ReferralStatus) ([]*model.Referral, error) {
	referrals, err := s.referrals.ListByReferrer(ctx, doctorID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent referrals: %w", err)
	}
	return referrals, nil
}

// ListReceived returns referrals addressed to the doctor.
func (s *Service) ListReceived(ctx context.Context, doctorID uuid.UUID, status model.ReferralStatus) ([]*model.Referral, error) {
	referrals, err := s.referrals.ListByReferred(ctx, doctorID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list received referrals: %w", err)
	}
	return referrals, nil
}

func (s *Service) resolve(ctx context.Context, doctorID, referralID uuid.UUID) (*model.Referral, error) {
	referral, err := s.referrals.Get(ctx, referralID)
	if err != nil {
		return nil, errors.NotFound("referral", err)
	}
	if referral.ReferredDoctorID != doctorID {
		return nil, errors.Unauthorized("referral is not addressed to you", nil)
	}
	if referral.Status != model.ReferralStatusPending {
		return nil, errors.Conflict("referral already resolved", nil)
	}
	return referral, nil
}

func (s *Service) notify(ctx context.Context, receiverID uuid.UUID, topic, message string, from uuid.UUID) {
	err := s.notifier.Send(ctx, &model.Notify{
		ReceiverID: receiverID,
		Payload: model.NotificationPayload{
			Topic:   topic,
			Message: message,
			From:    from.String(),
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Str("receiver_id", receiverID.String()).Str("topic", topic).Msg("failed to send referral notification")
	}
}
