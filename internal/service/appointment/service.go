package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zomujo/telemed-api/internal/calendar"
	"github.com/zomujo/telemed-api/internal/email"
	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/errors"
)

// Notifier delivers a notification to one user, live or deferred.
type Notifier interface {
	Send(ctx context.Context, notify *model.Notify) error
}

type Service struct {
	slots    repository.SlotRepository
	requests repository.AppointmentRequestRepository
	appts    repository.AppointmentRepository
	users    repository.UserRepository
	calendar calendar.Service
	email    email.Service
	notifier Notifier
	logger   zerolog.Logger
}

func NewService(
	slots repository.SlotRepository,
	requests repository.AppointmentRequestRepository,
	appts repository.AppointmentRepository,
	users repository.UserRepository,
	cal calendar.Service,
	mail email.Service,
	notifier Notifier,
	logger zerolog.Logger,
) *Service {
	return &Service{
		slots:    slots,
		requests: requests,
		appts:    appts,
		users:    users,
		calendar: cal,
		email:    mail,
		notifier: notifier,
		logger:   logger,
	}
}

// RequestAppointment books the slot for the patient. The new request is
// accepted immediately: the slot flips to unavailable, every other live
// request on it is declined, and a confirmed appointment mirroring the slot
// is created. The slot read and write are separate statements, so two
// near-simultaneous requests can both observe it available.
func (s *Service) RequestAppointment(ctx context.Context, patientID uuid.UUID, req *model.RequestAppointmentRequest) (*model.Appointment, error) {
	slot, err := s.slots.Get(ctx, req.SlotID)
	if err != nil {
		return nil, errors.NotFound("slot", err)
	}

	request := &model.AppointmentRequest{
		Base:      model.Base{ID: uuid.New()},
		PatientID: patientID,
		SlotID:    slot.ID,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Type:      slot.Type,
		Status:    model.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create appointment request: %w", err)
	}

	slot.Status = model.SlotStatusUnavailable
	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to reserve slot: %w", err)
	}

	if err := s.reconcile(ctx, slot.ID, request.ID); err != nil {
		return nil, err
	}
	request.Status = model.RequestStatusAccepted

	apt := &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		DoctorID:  slot.DoctorID,
		PatientID: patientID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Type:      slot.Type,
		Status:    model.AppointmentStatusAccepted,
	}
	if slot.Type == model.SlotTypeVirtual {
		link, err := s.calendar.CreateMeeting(ctx, calendar.Event{
			Title:    "Telemed consultation",
			StartsAt: slot.StartsAt(),
			EndsAt:   slot.EndsAt(),
		})
		if err != nil {
			s.logger.Error().Err(err).Str("slot_id", slot.ID.String()).Msg("failed to create meeting link")
		} else {
			apt.MeetingLink = &link
		}
	}
	if err := s.appts.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := s.users.AddPatientToRoster(ctx, slot.DoctorID, patientID); err != nil {
		return nil, fmt.Errorf("failed to add patient to roster: %w", err)
	}

	s.notifyBooking(ctx, apt)

	return apt, nil
}

// reconcile accepts the winning request and declines every other request on
// the slot that has not been cancelled.
func (s *Service) reconcile(ctx context.Context, slotID, winnerID uuid.UUID) error {
	siblings, err := s.requests.ListBySlot(ctx, slotID)
	if err != nil {
		return fmt.Errorf("failed to list slot requests: %w", err)
	}

	for _, sibling := range siblings {
		switch {
		case sibling.ID == winnerID:
			sibling.Status = model.RequestStatusAccepted
		case sibling.Status == model.RequestStatusCancelled:
			continue
		default:
			sibling.Status = model.RequestStatusDeclined
		}
		if err := s.requests.Update(ctx, sibling); err != nil {
			return fmt.Errorf("failed to update request %s: %w", sibling.ID, err)
		}
	}
	return nil
}

// CancelRequest marks the patient's request cancelled. The slot is not
// reopened.
func (s *Service) CancelRequest(ctx context.Context, patientID, requestID uuid.UUID) error {
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return errors.NotFound("appointment request", err)
	}
	if request.PatientID != patientID {
		return errors.Unauthorized("request does not belong to you", nil)
	}

	request.Status = model.RequestStatusCancelled
	if err := s.requests.Update(ctx, request); err != nil {
		return fmt.Errorf("failed to cancel request: %w", err)
	}
	return nil
}

// RescheduleRequest points the patient's request at a different slot. The new
// slot's other requests are left untouched.
func (s *Service) RescheduleRequest(ctx context.Context, patientID, requestID uuid.UUID, newSlotID uuid.UUID) error {
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return errors.NotFound("appointment request", err)
	}
	if request.PatientID != patientID {
		return errors.Unauthorized("request does not belong to you", nil)
	}

	slot, err := s.slots.Get(ctx, newSlotID)
	if err != nil {
		return errors.NotFound("slot", err)
	}

	request.SlotID = slot.ID
	request.Type = slot.Type
	if err := s.requests.Update(ctx, request); err != nil {
		return fmt.Errorf("failed to reschedule request: %w", err)
	}
	return nil
}

// ListRequests returns the patient's requests ordered by slot start.
func (s *Service) ListRequests(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentRequest, error) {
	requests, err := s.requests.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// ListAppointments returns appointments matching the filters.
func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.appts.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// GetAppointment returns one appointment by id.
func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.appts.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("appointment", err)
	}
	return apt, nil
}

// notifyBooking tells both parties about the confirmed appointment. Failures
// are logged and swallowed; the booking already happened.
func (s *Service) notifyBooking(ctx context.Context, apt *model.Appointment) {
	doctor, err := s.users.Get(ctx, apt.DoctorID)
	if err != nil {
		s.logger.Error().Err(err).Str("doctor_id", apt.DoctorID.String()).Msg("failed to load doctor for booking notification")
		return
	}
	patient, err := s.users.Get(ctx, apt.PatientID)
	if err != nil {
		s.logger.Error().Err(err).Str("patient_id", apt.PatientID.String()).Msg("failed to load patient for booking notification")
		return
	}

	when := fmt.Sprintf("%s at %s", apt.Date.Format("Mon 2 Jan 2006"), apt.StartTime)

	if err := s.notifier.Send(ctx, &model.Notify{
		ReceiverID: doctor.ID,
		Payload: model.NotificationPayload{
			Topic:   "appointment_booked",
			Message: fmt.Sprintf("%s %s booked your slot on %s", patient.FirstName, patient.LastName, when),
			From:    patient.ID.String(),
		},
	}); err != nil {
		s.logger.Error().Err(err).Msg("failed to notify doctor of booking")
	}

	if err := s.notifier.Send(ctx, &model.Notify{
		ReceiverID: patient.ID,
		Payload: model.NotificationPayload{
			Topic:   "appointment_confirmed",
			Message: fmt.Sprintf("Your appointment with Dr. %s is confirmed for %s", doctor.LastName, when),
			From:    doctor.ID.String(),
		},
	}); err != nil {
		s.logger.Error().Err(err).Msg("failed to notify patient of booking")
	}

	body := fmt.Sprintf("Your appointment with Dr. %s %s is confirmed for %s.", doctor.FirstName, doctor.LastName, when)
	if err := s.email.SendCustom(ctx, patient.Email, "Appointment confirmed", body); err != nil {
		s.logger.Error().Err(err).Str("to", patient.Email).Msg("failed to send booking email")
	}
}
