package model

import (
	"time"

	"github.com/google/uuid"
)

// FutureVisit is a scheduled follow-up reminder tied to a consultation.
type FutureVisit struct {
	Base
	ConsultationID uuid.UUID `db:"consultation_id" json:"consultation_id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	Message        string    `db:"message" json:"message"`
	SendMessageAt  time.Time `db:"send_message_at" json:"send_message_at"`
}

type ScheduleFollowUpRequest struct {
	ConsultationID uuid.UUID `json:"consultation_id" binding:"required"`
	Message        string    `json:"message" binding:"required"`
	SendMessageAt  time.Time `json:"send_message_at" binding:"required"`
}
