package model

import (
	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionStatusInitiated TransactionStatus = "initiated"
	TransactionStatusSuccess   TransactionStatus = "success"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction records a payment gateway interaction by reference.
type Transaction struct {
	Base
	Reference string            `db:"reference" json:"reference"`
	Amount    int64             `db:"amount" json:"amount"`
	Currency  string            `db:"currency" json:"currency"`
	PatientID uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	Status    TransactionStatus `db:"status" json:"status"`
}

type InitiatePaymentRequest struct {
	Email    string    `json:"email" binding:"required,email"`
	Amount   int64     `json:"amount" binding:"required,gt=0"`
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
}

type VerifyPaymentRequest struct {
	Reference string    `json:"reference" binding:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
}

type WithdrawRequest struct {
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	BankCode      string `json:"bank_code" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
	AccountName   string `json:"account_name" binding:"required"`
}
