package model

import (
	"github.com/google/uuid"
)

type ReviewStatus string

const (
	ReviewStatusPending   ReviewStatus = "pending"
	ReviewStatusSkipped   ReviewStatus = "skipped"
	ReviewStatusCompleted ReviewStatus = "completed"
)

// Review is spawned pending when a consultation completes and later filled
// in by the patient.
type Review struct {
	Base
	DoctorID       uuid.UUID    `db:"doctor_id" json:"doctor_id"`
	PatientID      uuid.UUID    `db:"patient_id" json:"patient_id"`
	ConsultationID uuid.UUID    `db:"consultation_id" json:"consultation_id"`
	Status         ReviewStatus `db:"status" json:"status"`
	Rating         int          `db:"rating" json:"rating"`
	Comment        string       `db:"comment" json:"comment,omitempty"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment string `json:"comment"`
	Skip    bool   `json:"skip"`
}
