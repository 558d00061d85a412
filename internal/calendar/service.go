package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/config"
)

// Event describes a scheduled meeting between a doctor and a patient.
type Event struct {
	Title     string
	StartsAt  time.Time
	EndsAt    time.Time
	Attendees []string
}

type Service interface {
	CreateMeeting(ctx context.Context, event Event) (string, error)
}

type service struct {
	baseURL string
}

func NewService(cfg config.CalendarConfig) Service {
	return &service{baseURL: cfg.MeetingBaseURL}
}

// CreateMeeting provisions a conferencing room for the event and returns its
// join link. Rooms are addressed by a fresh opaque identifier so links cannot
// be guessed from appointment data.
func (s *service) CreateMeeting(ctx context.Context, event Event) (string, error) {
	if event.StartsAt.IsZero() {
		return "", fmt.Errorf("event start time is required")
	}
	room := uuid.New().String()
	return fmt.Sprintf("%s/%s", s.baseURL, room), nil
}
