package worker

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zomujo/telemed-api/internal/model"
)

type mockVisitRepo struct {
	ListDueOnFn func(ctx context.Context, day time.Time) ([]*model.FutureVisit, error)
}

func (m *mockVisitRepo) Create(ctx context.Context, visit *model.FutureVisit) error { return nil }
func (m *mockVisitRepo) ListDueOn(ctx context.Context, day time.Time) ([]*model.FutureVisit, error) {
	return m.ListDueOnFn(ctx, day)
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

type mockEmail struct {
	sent []string
}

func (m *mockEmail) SendVerification(ctx context.Context, email, token string) error { return nil }
func (m *mockEmail) SendWelcome(ctx context.Context, email, name string) error       { return nil }
func (m *mockEmail) SendCustom(ctx context.Context, to, subject, content string) error {
	m.sent = append(m.sent, to)
	return nil
}

type mockNotifier struct {
	sent []*model.Notify
	err  error
}

func (m *mockNotifier) Send(ctx context.Context, notify *model.Notify) error {
	m.sent = append(m.sent, notify)
	return m.err
}

func TestRemindSendsStreamAndEmail(t *testing.T) {
	patientID := uuid.New()
	visit := &model.FutureVisit{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     patientID,
		Message:       "Time for your blood pressure check",
		SendMessageAt: time.Now(),
	}

	visits := &mockVisitRepo{
		ListDueOnFn: func(ctx context.Context, day time.Time) ([]*model.FutureVisit, error) {
			return []*model.FutureVisit{visit}, nil
		},
	}
	users := &mockUserRepo{
		GetFn: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
			return &model.User{Base: model.Base{ID: id}, Email: "pat@example.com"}, nil
		},
	}
	mail := &mockEmail{}
	notifier := &mockNotifier{}

	w := NewReminderWorker(visits, users, mail, notifier, time.Hour, zerolog.Nop())
	require.NoError(t, w.remind(context.Background()))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, patientID, notifier.sent[0].ReceiverID)
	assert.Equal(t, "visit_reminder", notifier.sent[0].Payload.Topic)
	assert.Equal(t, visit.Message, notifier.sent[0].Payload.Message)
	assert.Equal(t, []string{"pat@example.com"}, mail.sent)
}

func TestRemindContinuesPastFailures(t *testing.T) {
	first := &model.FutureVisit{Base: model.Base{ID: uuid.New()}, PatientID: uuid.New()}
	second := &model.FutureVisit{Base: model.Base{ID: uuid.New()}, PatientID: uuid.New()}

	visits := &mockVisitRepo{
		ListDueOnFn: func(ctx context.Context, day time.Time) ([]*model.FutureVisit, error) {
			return []*model.FutureVisit{first, second}, nil
		},
	}
	users := &mockUserRepo{
		GetFn: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
			if id == first.PatientID {
				return nil, assert.AnError
			}
			return &model.User{Base: model.Base{ID: id}, Email: "pat@example.com"}, nil
		},
	}
	mail := &mockEmail{}
	notifier := &mockNotifier{}

	w := NewReminderWorker(visits, users, mail, notifier, time.Hour, zerolog.Nop())
	require.NoError(t, w.remind(context.Background()))

	// Only the loadable patient got notified.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, second.PatientID, notifier.sent[0].ReceiverID)
}
