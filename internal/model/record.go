package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RecordStatus string

const (
	RecordStatusActive    RecordStatus = "active"
	RecordStatusEnded     RecordStatus = "ended"
	RecordStatusCompleted RecordStatus = "completed"
)

// ReasonEndedAuto marks consultations closed by the expiry sweep.
const ReasonEndedAuto = "auto"

// ConsultationRecord tracks a live or historical clinical encounter.
type ConsultationRecord struct {
	Base
	DoctorID    uuid.UUID      `db:"doctor_id" json:"doctor_id"`
	PatientID   uuid.UUID      `db:"patient_id" json:"patient_id"`
	Status      RecordStatus   `db:"status" json:"status"`
	CurrentStep int            `db:"current_step" json:"current_step"`
	Complaints  pq.StringArray `db:"complaints" json:"complaints"`
	Notes       string         `db:"notes" json:"notes,omitempty"`
	ReasonEnded string         `db:"reason_ended" json:"reason_ended,omitempty"`
}

type SetStepRequest struct {
	ConsultationID uuid.UUID `json:"consultation_id" binding:"required"`
	Step           int       `json:"step" binding:"min=0"`
}

type CompleteConsultationRequest struct {
	ConsultationID uuid.UUID `json:"consultation_id" binding:"required"`
	Notes          string    `json:"notes"`
}

type EndConsultationRequest struct {
	ConsultationID uuid.UUID `json:"consultation_id" binding:"required"`
	Reason         string    `json:"reason" binding:"required"`
}
