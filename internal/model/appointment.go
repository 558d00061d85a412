package model

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusDeclined  RequestStatus = "declined"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// AppointmentRequest is a patient's bid to occupy a slot. Many requests may
// reference one slot; at most one ends up accepted.
type AppointmentRequest struct {
	Base
	PatientID uuid.UUID     `db:"patient_id" json:"patient_id"`
	SlotID    uuid.UUID     `db:"slot_id" json:"slot_id"`
	Reason    string        `db:"reason" json:"reason"`
	Notes     string        `db:"notes" json:"notes,omitempty"`
	Type      SlotType      `db:"type" json:"type"`
	Status    RequestStatus `db:"status" json:"status"`
}

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusAccepted  AppointmentStatus = "accepted"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusDeclined  AppointmentStatus = "declined"
)

// Appointment is the confirmed encounter materialized from an accepted
// request, mirroring its slot's date and times.
type Appointment struct {
	Base
	DoctorID    uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	Date        time.Time         `db:"date" json:"date"`
	StartTime   string            `db:"start_time" json:"start_time"`
	EndTime     string            `db:"end_time" json:"end_time"`
	Reason      string            `db:"reason" json:"reason,omitempty"`
	Notes       string            `db:"notes" json:"notes,omitempty"`
	Type        SlotType          `db:"type" json:"type"`
	Status      AppointmentStatus `db:"status" json:"status"`
	MeetingLink *string           `db:"meeting_link" json:"meeting_link,omitempty"`
}

// EndsAt resolves the appointment's end to an absolute time.
func (a *Appointment) EndsAt() time.Time {
	return combineDateTime(a.Date, a.EndTime)
}

type RequestAppointmentRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
	Reason string    `json:"reason" binding:"required"`
	Notes  string    `json:"notes"`
}

type RescheduleRequestRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
}

type AppointmentFilters struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}
