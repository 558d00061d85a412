package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	gateway "github.com/zomujo/telemed-api/internal/payment"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/repository"
	"github.com/zomujo/telemed-api/pkg/errors"
)

type Service struct {
	transactions repository.TransactionRepository
	gateway      gateway.Gateway
	currency     string
}

func NewService(transactions repository.TransactionRepository, gw gateway.Gateway, currency string) *Service {
	return &Service{transactions: transactions, gateway: gw, currency: currency}
}

// Initiate starts a card charge for a consultation fee and records the
// transaction by reference.
func (s *Service) Initiate(ctx context.Context, patientID uuid.UUID, req *model.InitiatePaymentRequest) (*gateway.InitializeResponse, error) {
	resp, err := s.gateway.Initialize(ctx, req.Email, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment: %w", err)
	}

	tx := &model.Transaction{
		Base:      model.Base{ID: uuid.New()},
		Reference: resp.Reference,
		Amount:    req.Amount,
		Currency:  s.currency,
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Status:    model.TransactionStatusInitiated,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	return resp, nil
}

// Verify confirms the charge with the gateway and settles the stored
// transaction either way.
func (s *Service) Verify(ctx context.Context, reference string) (*model.Transaction, error) {
	tx, err := s.transactions.GetByReference(ctx, reference)
	if err != nil {
		return nil, errors.NotFound("transaction", err)
	}

	resp, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}

	if resp.Status == "success" {
		tx.Status = model.TransactionStatusSuccess
	} else {
		tx.Status = model.TransactionStatusFailed
	}
	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to settle transaction: %w", err)
	}

	return tx, nil
}

// ListBanks proxies the gateway's bank directory for withdrawal forms.
func (s *Service) ListBanks(ctx context.Context) ([]gateway.Bank, error) {
	banks, err := s.gateway.ListBanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	return banks, nil
}

// Withdraw pays out a doctor's balance to their bank account.
func (s *Service) Withdraw(ctx context.Context, doctorID uuid.UUID, req *model.WithdrawRequest) (string, error) {
	recipient, err := s.gateway.CreateRecipient(ctx, req.AccountName, req.AccountNumber, req.BankCode)
	if err != nil {
		return "", fmt.Errorf("failed to create transfer recipient: %w", err)
	}

	transferCode, err := s.gateway.Transfer(ctx, recipient, req.Amount, "Consultation earnings payout")
	if err != nil {
		return "", fmt.Errorf("failed to initiate transfer: %w", err)
	}
	return transferCode, nil
}
