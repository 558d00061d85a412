package consultation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/errors"
)

type Service struct {
	records repository.RecordRepository
	appts   repository.AppointmentRepository
	reviews repository.ReviewRepository
	visits  repository.FutureVisitRepository
	logger  zerolog.Logger
}

func NewService(
	records repository.RecordRepository,
	appts repository.AppointmentRepository,
	reviews repository.ReviewRepository,
	visits repository.FutureVisitRepository,
	logger zerolog.Logger,
) *Service {
	return &Service{
		records: records,
		appts:   appts,
		reviews: reviews,
		visits:  visits,
		logger:  logger,
	}
}

// Start opens a consultation for the pair. A doctor can only hold one active
// consultation at a time.
func (s *Service) Start(ctx context.Context, doctorID, patientID uuid.UUID) (*model.ConsultationRecord, error) {
	active, err := s.records.GetActiveByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active consultation: %w", err)
	}
	if active != nil {
		return nil, errors.Conflict("doctor already has an active consultation", nil)
	}

	record := &model.ConsultationRecord{
		Base:        model.Base{ID: uuid.New()},
		DoctorID:    doctorID,
		PatientID:   patientID,
		Status:      model.RecordStatusActive,
		CurrentStep: 0,
		Complaints:  []string{},
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create consultation record: %w", err)
	}
	return record, nil
}

// Active returns the doctor's current active consultation, or nil.
func (s *Service) Active(ctx context.Context, doctorID uuid.UUID) (*model.ConsultationRecord, error) {
	record, err := s.records.GetActiveByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active consultation: %w", err)
	}
	return record, nil
}

// SetStep moves the consultation's workflow pointer. The step value is not
// range checked.
func (s *Service) SetStep(ctx context.Context, doctorID uuid.UUID, consultationID uuid.UUID, step int) (*model.ConsultationRecord, error) {
	record, err := s.getOwned(ctx, doctorID, consultationID)
	if err != nil {
		return nil, err
	}

	record.CurrentStep = step
	if err := s.records.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update consultation step: %w", err)
	}
	return record, nil
}

// AddComplaints appends presenting complaints to the record.
func (s *Service) AddComplaints(ctx context.Context, doctorID uuid.UUID, consultationID uuid.UUID, complaints []string) (*model.ConsultationRecord, error) {
	record, err := s.getOwned(ctx, doctorID, consultationID)
	if err != nil {
		return nil, err
	}

	record.Complaints = append(record.Complaints, complaints...)
	if err := s.records.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update complaints: %w", err)
	}
	return record, nil
}

// Complete closes the consultation as finished. The pair's most recent
// accepted appointment is marked completed and a pending review is opened
// for the patient.
func (s *Service) Complete(ctx context.Context, doctorID uuid.UUID, consultationID uuid.UUID, notes string) (*model.ConsultationRecord, error) {
	record, err := s.getOwned(ctx, doctorID, consultationID)
	if err != nil {
		return nil, err
	}
	if record.Status != model.RecordStatusActive {
		return nil, errors.Conflict("consultation is not active", nil)
	}

	record.Status = model.RecordStatusCompleted
	record.Notes = notes
	if err := s.records.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to complete consultation: %w", err)
	}

	s.completePairedAppointment(ctx, record)

	review := &model.Review{
		Base:           model.Base{ID: uuid.New()},
		DoctorID:       record.DoctorID,
		PatientID:      record.PatientID,
		ConsultationID: record.ID,
		Status:         model.ReviewStatusPending,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		s.logger.Error().Err(err).Str("consultation_id", record.ID.String()).Msg("failed to open review")
	}

	return record, nil
}

// End closes the consultation early with a reason. The paired appointment is
// still marked completed.
func (s *Service) End(ctx context.Context, doctorID uuid.UUID, consultationID uuid.UUID, reason string) (*model.ConsultationRecord, error) {
	record, err := s.getOwned(ctx, doctorID, consultationID)
	if err != nil {
		return nil, err
	}
	if record.Status != model.RecordStatusActive {
		return nil, errors.Conflict("consultation is not active", nil)
	}

	record.Status = model.RecordStatusEnded
	record.ReasonEnded = reason
	if err := s.records.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to end consultation: %w", err)
	}

	s.completePairedAppointment(ctx, record)

	return record, nil
}

// ScheduleFollowUp books a reminder for a future visit tied to the
// consultation. The patient is reminded on the day it falls due.
func (s *Service) ScheduleFollowUp(ctx context.Context, doctorID, consultationID uuid.UUID, message string, sendAt time.Time) (*model.FutureVisit, error) {
	record, err := s.getOwned(ctx, doctorID, consultationID)
	if err != nil {
		return nil, err
	}

	visit := &model.FutureVisit{
		Base:           model.Base{ID: uuid.New()},
		ConsultationID: record.ID,
		PatientID:      record.PatientID,
		Message:        message,
		SendMessageAt:  sendAt,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to schedule follow-up: %w", err)
	}
	return visit, nil
}

// History lists the patient's past consultations.
func (s *Service) History(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*model.ConsultationRecord, error) {
	records, err := s.records.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return records, nil
}

func (s *Service) getOwned(ctx context.Context, doctorID, consultationID uuid.UUID) (*model.ConsultationRecord, error) {
	record, err := s.records.Get(ctx, consultationID)
	if err != nil {
		return nil, errors.NotFound("consultation", err)
	}
	if record.DoctorID != doctorID {
		return nil, errors.Unauthorized("consultation does not belong to you", nil)
	}
	return record, nil
}

func (s *Service) completePairedAppointment(ctx context.Context, record *model.ConsultationRecord) {
	apt, err := s.appts.GetLatestAccepted(ctx, record.DoctorID, record.PatientID)
	if err != nil {
		s.logger.Error().Err(err).Str("consultation_id", record.ID.String()).Msg("failed to load paired appointment")
		return
	}
	if apt == nil {
		return
	}

	apt.Status = model.AppointmentStatusCompleted
	if err := s.appts.Update(ctx, apt); err != nil {
		s.logger.Error().Err(err).Str("appointment_id", apt.ID.String()).Msg("failed to complete paired appointment")
	}
}
