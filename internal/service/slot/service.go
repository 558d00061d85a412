package slot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/errors"
)

type Service struct {
	repo repository.SlotRepository
}

func NewService(repo repository.SlotRepository) *Service {
	return &Service{repo: repo}
}

// CreateSlot publishes a bookable window for the doctor. Overlapping slots
// are not rejected.
func (s *Service) CreateSlot(ctx context.Context, doctorID uuid.UUID, req *model.CreateSlotRequest) (*model.AppointmentSlot, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.BadRequest("invalid date", err)
	}

	slot := &model.AppointmentSlot{
		Base:      model.Base{ID: uuid.New()},
		DoctorID:  doctorID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      req.Type,
		Status:    model.SlotStatusAvailable,
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return slot, nil
}

// ListAvailable returns the doctor's open slots in the date range, dropping
// any whose start time has already passed.
func (s *Service) ListAvailable(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error) {
	slots, err := s.repo.ListAvailable(ctx, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}

	now := time.Now()
	upcoming := make([]*model.AppointmentSlot, 0, len(slots))
	for _, sl := range slots {
		if sl.StartsAt().After(now) {
			upcoming = append(upcoming, sl)
		}
	}
	return upcoming, nil
}

// ListSlots returns all of the doctor's slots, optionally for a single date.
func (s *Service) ListSlots(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*model.AppointmentSlot, error) {
	slots, err := s.repo.ListByDoctor(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}
