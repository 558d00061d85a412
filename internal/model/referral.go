package model

import (
	"github.com/google/uuid"
)

type ReferralStatus string

const (
	ReferralStatusPending  ReferralStatus = "pending"
	ReferralStatusAccepted ReferralStatus = "accepted"
	ReferralStatusDeclined ReferralStatus = "declined"
)

// Referral is a doctor-to-doctor handoff of a patient.
type Referral struct {
	Base
	DoctorID         uuid.UUID      `db:"doctor_id" json:"doctor_id"`
	ReferredDoctorID uuid.UUID      `db:"referred_doctor_id" json:"referred_doctor_id"`
	PatientID        uuid.UUID      `db:"patient_id" json:"patient_id"`
	Status           ReferralStatus `db:"status" json:"status"`
}

type ReferPatientRequest struct {
	ReferredDoctorID uuid.UUID `json:"referred_doctor_id" binding:"required"`
	PatientID        uuid.UUID `json:"patient_id" binding:"required"`
}
