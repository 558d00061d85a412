package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gateway "github.com/zomujo/telemed-api/internal/payment"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/pkg/errors"
)

type mockTransactionRepo struct {
	CreateFn         func(ctx context.Context, tx *model.Transaction) error
	GetByReferenceFn func(ctx context.Context, reference string) (*model.Transaction, error)
	UpdateFn         func(ctx context.Context, tx *model.Transaction) error
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	return m.CreateFn(ctx, tx)
}
func (m *mockTransactionRepo) GetByReference(ctx context.Context, reference string) (*model.Transaction, error) {
	return m.GetByReferenceFn(ctx, reference)
}
func (m *mockTransactionRepo) Update(ctx context.Context, tx *model.Transaction) error {
	return m.UpdateFn(ctx, tx)
}

type mockGateway struct {
	InitializeFn      func(ctx context.Context, email string, amount int64) (*gateway.InitializeResponse, error)
	VerifyFn          func(ctx context.Context, reference string) (*gateway.VerifyResponse, error)
	ListBanksFn       func(ctx context.Context) ([]gateway.Bank, error)
	CreateRecipientFn func(ctx context.Context, name, accountNumber, bankCode string) (string, error)
	TransferFn        func(ctx context.Context, recipientCode string, amount int64, reason string) (string, error)
}

func (m *mockGateway) Initialize(ctx context.Context, email string, amount int64) (*gateway.InitializeResponse, error) {
	return m.InitializeFn(ctx, email, amount)
}
func (m *mockGateway) Verify(ctx context.Context, reference string) (*gateway.VerifyResponse, error) {
	return m.VerifyFn(ctx, reference)
}
func (m *mockGateway) ListBanks(ctx context.Context) ([]gateway.Bank, error) {
	return m.ListBanksFn(ctx)
}
func (m *mockGateway) CreateRecipient(ctx context.Context, name, accountNumber, bankCode string) (string, error) {
	return m.CreateRecipientFn(ctx, name, accountNumber, bankCode)
}
func (m *mockGateway) Transfer(ctx context.Context, recipientCode string, amount int64, reason string) (string, error) {
	return m.TransferFn(ctx, recipientCode, amount, reason)
}

func TestInitiateRecordsTransaction(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()

	var recorded *model.Transaction
	repo := &mockTransactionRepo{
		CreateFn: func(ctx context.Context, tx *model.Transaction) error {
			recorded = tx
			return nil
		},
	}
	gw := &mockGateway{
		InitializeFn: func(ctx context.Context, email string, amount int64) (*gateway.InitializeResponse, error) {
			assert.Equal(t, "pat@example.com", email)
			assert.Equal(t, int64(5000), amount)
			return &gateway.InitializeResponse{
				AuthorizationURL: "https://checkout.example.com/abc",
				Reference:        "ref-123",
			}, nil
		},
	}
	svc := NewService(repo, gw, "GHS")

	resp, err := svc.Initiate(context.Background(), patientID, &model.InitiatePaymentRequest{
		Email:    "pat@example.com",
		Amount:   5000,
		DoctorID: doctorID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ref-123", resp.Reference)

	require.NotNil(t, recorded)
	assert.Equal(t, "ref-123", recorded.Reference)
	assert.Equal(t, int64(5000), recorded.Amount)
	assert.Equal(t, "GHS", recorded.Currency)
	assert.Equal(t, patientID, recorded.PatientID)
	assert.Equal(t, doctorID, recorded.DoctorID)
	assert.Equal(t, model.TransactionStatusInitiated, recorded.Status)
}

func TestVerifySettlesSuccess(t *testing.T) {
	tx := &model.Transaction{
		Base:      model.Base{ID: uuid.New()},
		Reference: "ref-123",
		Status:    model.TransactionStatusInitiated,
	}

	var updated *model.Transaction
	repo := &mockTransactionRepo{
		GetByReferenceFn: func(ctx context.Context, reference string) (*model.Transaction, error) {
			return tx, nil
		},
		UpdateFn: func(ctx context.Context, t *model.Transaction) error {
			updated = t
			return nil
		},
	}
	gw := &mockGateway{
		VerifyFn: func(ctx context.Context, reference string) (*gateway.VerifyResponse, error) {
			return &gateway.VerifyResponse{Status: "success", Reference: reference}, nil
		},
	}
	svc := NewService(repo, gw, "GHS")

	out, err := svc.Verify(context.Background(), "ref-123")
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusSuccess, out.Status)
	assert.Equal(t, updated, out)
}

func TestVerifySettlesFailure(t *testing.T) {
	tx := &model.Transaction{Base: model.Base{ID: uuid.New()}, Reference: "ref-456"}

	repo := &mockTransactionRepo{
		GetByReferenceFn: func(ctx context.Context, reference string) (*model.Transaction, error) {
			return tx, nil
		},
		UpdateFn: func(ctx context.Context, t *model.Transaction) error { return nil },
	}
	gw := &mockGateway{
		VerifyFn: func(ctx context.Context, reference string) (*gateway.VerifyResponse, error) {
			return &gateway.VerifyResponse{Status: "abandoned", Reference: reference}, nil
		},
	}
	svc := NewService(repo, gw, "GHS")

	out, err := svc.Verify(context.Background(), "ref-456")
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusFailed, out.Status)
}

func TestVerifyUnknownReference(t *testing.T) {
	repo := &mockTransactionRepo{
		GetByReferenceFn: func(ctx context.Context, reference string) (*model.Transaction, error) {
			return nil, assert.AnError
		},
	}
	svc := NewService(repo, &mockGateway{}, "GHS")

	_, err := svc.Verify(context.Background(), "no-such-ref")
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestWithdraw(t *testing.T) {
	gw := &mockGateway{
		CreateRecipientFn: func(ctx context.Context, name, accountNumber, bankCode string) (string, error) {
			assert.Equal(t, "Dr. Asante", name)
			assert.Equal(t, "0123456789", accountNumber)
			assert.Equal(t, "058", bankCode)
			return "RCP_abc", nil
		},
		TransferFn: func(ctx context.Context, recipientCode string, amount int64, reason string) (string, error) {
			assert.Equal(t, "RCP_abc", recipientCode)
			assert.Equal(t, int64(20000), amount)
			return "TRF_xyz", nil
		},
	}
	svc := NewService(&mockTransactionRepo{}, gw, "GHS")

	code, err := svc.Withdraw(context.Background(), uuid.New(), &model.WithdrawRequest{
		Amount:        20000,
		BankCode:      "058",
		AccountNumber: "0123456789",
		AccountName:   "Dr. Asante",
	})
	require.NoError(t, err)
	assert.Equal(t, "TRF_xyz", code)
}
