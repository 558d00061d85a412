package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotType string

const (
	SlotTypeVisit   SlotType = "visit"
	SlotTypeVirtual SlotType = "virtual"
)

type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "available"
	SlotStatusUnavailable SlotStatus = "unavailable"
)

// AppointmentSlot is a doctor-published bookable time window. Start and end
// times are wall-clock strings ("15:04") on the slot's date.
type AppointmentSlot struct {
	Base
	DoctorID  uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	Date      time.Time  `db:"date" json:"date"`
	StartTime string     `db:"start_time" json:"start_time"`
	EndTime   string     `db:"end_time" json:"end_time"`
	Type      SlotType   `db:"type" json:"type"`
	Status    SlotStatus `db:"status" json:"status"`
}

// StartsAt resolves the slot's start to an absolute time.
func (s *AppointmentSlot) StartsAt() time.Time {
	return combineDateTime(s.Date, s.StartTime)
}

// EndsAt resolves the slot's end to an absolute time.
func (s *AppointmentSlot) EndsAt() time.Time {
	return combineDateTime(s.Date, s.EndTime)
}

func combineDateTime(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location())
}

type CreateSlotRequest struct {
	Date      string   `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string   `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string   `json:"end_time" binding:"required,datetime=15:04"`
	Type      SlotType `json:"type" binding:"required,oneof=visit virtual"`
}
