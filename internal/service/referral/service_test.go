package referral

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/pkg/errors"
)

type mockReferralRepo struct {
	CreateFn func(ctx context.Context, referral *model.Referral) error
	GetFn    func(ctx context.Context, id uuid.UUID) (*model.Referral, error)
	UpdateFn func(ctx context.Context, referral *model.Referral) error
}

func (m *mockReferralRepo) Create(ctx context.Context, referral *model.Referral) error {
	return m.CreateFn(ctx, referral)
}
func (m *mockReferralRepo) Get(ctx context.Context, id uuid.UUID) (*model.Referral, error) {
	return m.GetFn(ctx, id)
}
func (m *mockReferralRepo) Update(ctx context.Context, referral *model.Referral) error {
	return m.UpdateFn(ctx, referral)
}
func (m *mockReferralRepo) ListByReferrer(ctx context.Context, doctorID uuid.UUID, status model.ReferralStatus) ([]*model.Referral, error) {
	return nil, nil
}
func (m *mockReferralRepo) ListByReferred(ctx context.Context, doctorID uuid.UUID, status model.ReferralStatus) ([]*model.Referral, error) {
	return nil, nil
}

type mockUserRepo struct {
	GetFn func(ctx context.Context, id uuid.UUID) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (m *mockUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return m.GetFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error { return nil }
func (m *mockUserRepo) CreateDoctorProfile(ctx context.Context, profile *model.DoctorProfile) error {
	return nil
}
func (m *mockUserRepo) GetDoctorProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	return nil, nil
}
func (m *mockUserRepo) UpdateDoctorRating(ctx context.Context, doctorID uuid.UUID, rating float64) error {
	return nil
}
func (m *mockUserRepo) SearchDoctors(ctx context.Context, filters *model.DoctorSearchFilters) ([]*model.Doctor, error) {
	return nil, nil
}
func (m *mockUserRepo) AddPatientToRoster(ctx context.Context, doctorID, patientID uuid.UUID) error {
	return nil
}
func (m *mockUserRepo) ListRoster(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) Counts(ctx context.Context) (*model.AnalyticsCounts, error) { return nil, nil }

type mockNotifier struct {
	sent []*model.Notify
}

func (m *mockNotifier) Send(ctx context.Context, notify *model.Notify) error {
	m.sent = append(m.sent, notify)
	return nil
}

func doctorUser(id uuid.UUID) *model.User {
	return &model.User{Base: model.Base{ID: id}, Role: model.RoleDoctor}
}

func TestRefer(t *testing.T) {
	referrerID := uuid.New()
	targetID := uuid.New()
	patientID := uuid.New()

	var created *model.Referral
	referrals := &mockReferralRepo{
		CreateFn: func(ctx context.Context, referral *model.Referral) error {
			created = referral
			return nil
		},
	}
	users := &mockUserRepo{
		GetFn: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
			return doctorUser(id), nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewService(referrals, users, notifier, zerolog.Nop())

	referral, err := svc.Refer(context.Background(), referrerID, &model.ReferPatientRequest{
		ReferredDoctorID: targetID,
		PatientID:        patientID,
	})
	require.NoError(t, err)
	assert.Equal(t, created, referral)
	assert.Equal(t, model.ReferralStatusPending, referral.Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, targetID, notifier.sent[0].ReceiverID)
	assert.Equal(t, "referral_received", notifier.sent[0].Payload.Topic)
}

func TestReferToSelfRejected(t *testing.T) {
	doctorID := uuid.New()
	svc := NewService(&mockReferralRepo{}, &mockUserRepo{}, &mockNotifier{}, zerolog.Nop())

	_, err := svc.Refer(context.Background(), doctorID, &model.ReferPatientRequest{
		ReferredDoctorID: doctorID,
		PatientID:        uuid.New(),
	})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}

func TestReferToNonDoctorRejected(t *testing.T) {
	users := &mockUserRepo{
		GetFn: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
			return &model.User{Base: model.Base{ID: id}, Role: model.RolePatient}, nil
		},
	}
	svc := NewService(&mockReferralRepo{}, users, &mockNotifier{}, zerolog.Nop())

	_, err := svc.Refer(context.Background(), uuid.New(), &model.ReferPatientRequest{
		ReferredDoctorID: uuid.New(),
		PatientID:        uuid.New(),
	})
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestAcceptNotifiesBothParties(t *testing.T) {
	receiverID := uuid.New()
	referral := &model.Referral{
		Base:             model.Base{ID: uuid.New()},
		DoctorID:         uuid.New(),
		ReferredDoctorID: receiverID,
		PatientID:        uuid.New(),
		Status:           model.ReferralStatusPending,
	}

	referrals := &mockReferralRepo{
		GetFn:    func(ctx context.Context, id uuid.UUID) (*model.Referral, error) { return referral, nil },
		UpdateFn: func(ctx context.Context, r *model.Referral) error { return nil },
	}
	notifier := &mockNotifier{}
	svc := NewService(referrals, &mockUserRepo{}, notifier, zerolog.Nop())

	out, err := svc.Accept(context.Background(), receiverID, referral.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReferralStatusAccepted, out.Status)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, referral.DoctorID, notifier.sent[0].ReceiverID)
	assert.Equal(t, referral.PatientID, notifier.sent[1].ReceiverID)
}

func TestDeclineNotifiesReferrerOnly(t *testing.T) {
	receiverID := uuid.New()
	referral := &model.Referral{
		Base:             model.Base{ID: uuid.New()},
		DoctorID:         uuid.New(),
		ReferredDoctorID: receiverID,
		Status:           model.ReferralStatusPending,
	}

	referrals := &mockReferralRepo{
		GetFn:    func(ctx context.Context, id uuid.UUID) (*model.Referral, error) { return referral, nil },
		UpdateFn: func(ctx context.Context, r *model.Referral) error { return nil },
	}
	notifier := &mockNotifier{}
	svc := NewService(referrals, &mockUserRepo{}, notifier, zerolog.Nop())

	out, err := svc.Decline(context.Background(), receiverID, referral.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReferralStatusDeclined, out.Status)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, referral.DoctorID, notifier.sent[0].ReceiverID)
}

func TestResolveWrongAddressee(t *testing.T) {
	referral := &model.Referral{
		Base:             model.Base{ID: uuid.New()},
		ReferredDoctorID: uuid.New(),
		Status:           model.ReferralStatusPending,
	}
	referrals := &mockReferralRepo{
		GetFn: func(ctx context.Context, id uuid.UUID) (*model.Referral, error) { return referral, nil },
	}
	svc := NewService(referrals, &mockUserRepo{}, &mockNotifier{}, zerolog.Nop())

	_, err := svc.Accept(context.Background(), uuid.New(), referral.ID)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestResolveAlreadyResolved(t *testing.T) {
	receiverID := uuid.New()
	referral := &model.Referral{
		Base:             model.Base{ID: uuid.New()},
		ReferredDoctorID: receiverID,
		Status:           model.ReferralStatusAccepted,
	}
	referrals := &mockReferralRepo{
		GetFn: func(ctx context.Context, id uuid.UUID) (*model.Referral, error) { return referral, nil },
	}
	svc := NewService(referrals, &mockUserRepo{}, &mockNotifier{}, zerolog.Nop())

	_, err := svc.Decline(context.Background(), receiverID, referral.ID)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}
