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
	"github.com/zomujo/telemed-api/pkg/metrics"
)

// Shared across tests; promauto registers on the default registry and
// panics on duplicates.
var testMetrics = metrics.New("worker_test")

type mockAppointmentRepo struct {
	ListAcceptedBeforeFn func(ctx context.Context, date time.Time) ([]*model.Appointment, error)
	UpdateFn             func(ctx context.Context, apt *model.Appointment) error
}

func (m *mockAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error { return nil }
func (m *mockAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}
func (m *mockAppointmentRepo) Update(ctx context.Context, apt *model.Appointment) error {
	return m.UpdateFn(ctx, apt)
}
func (m *mockAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}
func (m *mockAppointmentRepo) GetLatestAccepted(ctx context.Context, doctorID, patientID uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}
func (m *mockAppointmentRepo) ListAcceptedBefore(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	return m.ListAcceptedBeforeFn(ctx, date)
}

type mockRecordRepo struct {
	ListActiveFn func(ctx context.Context) ([]*model.ConsultationRecord, error)
	UpdateFn     func(ctx context.Context, record *model.ConsultationRecord) error
}

func (m *mockRecordRepo) Create(ctx context.Context, record *model.ConsultationRecord) error {
	return nil
}
func (m *mockRecordRepo) Get(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
	return nil, nil
}
func (m *mockRecordRepo) Update(ctx context.Context, record *model.ConsultationRecord) error {
	return m.UpdateFn(ctx, record)
}
func (m *mockRecordRepo) GetActiveByDoctor(ctx context.Context, doctorID uuid.UUID) (*model.ConsultationRecord, error) {
	return nil, nil
}
func (m *mockRecordRepo) ListActive(ctx context.Context) ([]*model.ConsultationRecord, error) {
	return m.ListActiveFn(ctx)
}
func (m *mockRecordRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*model.ConsultationRecord, error) {
	return nil, nil
}

func acceptedAppointment(endedAgo time.Duration) *model.Appointment {
	end := time.Now().Add(-endedAgo)
	return &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		Date:      time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()),
		StartTime: end.Add(-30 * time.Minute).Format("15:04"),
		EndTime:   end.Format("15:04"),
		Status:    model.AppointmentStatusAccepted,
	}
}

func TestAppointmentSweepCancelsBeyondGrace(t *testing.T) {
	stale := acceptedAppointment(25 * time.Hour)

	var updated []*model.Appointment
	repo := &mockAppointmentRepo{
		ListAcceptedBeforeFn: func(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
			return []*model.Appointment{stale}, nil
		},
		UpdateFn: func(ctx context.Context, apt *model.Appointment) error {
			updated = append(updated, apt)
			return nil
		},
	}

	w := NewAppointmentSweeper(repo, time.Minute, testMetrics, zerolog.Nop())
	require.NoError(t, w.sweep(context.Background()))

	require.Len(t, updated, 1)
	assert.Equal(t, model.AppointmentStatusCancelled, updated[0].Status)
}

func TestAppointmentSweepSparesWithinGrace(t *testing.T) {
	recent := acceptedAppointment(2 * time.Hour)

	repo := &mockAppointmentRepo{
		ListAcceptedBeforeFn: func(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
			return []*model.Appointment{recent}, nil
		},
		UpdateFn: func(ctx context.Context, apt *model.Appointment) error {
			t.Fatal("appointment inside the grace window must not be touched")
			return nil
		},
	}

	w := NewAppointmentSweeper(repo, time.Minute, testMetrics, zerolog.Nop())
	require.NoError(t, w.sweep(context.Background()))
	assert.Equal(t, model.AppointmentStatusAccepted, recent.Status)
}

func TestConsultationSweepClosesStale(t *testing.T) {
	maxAge := 150 * time.Minute
	stale := &model.ConsultationRecord{
		Base:   model.Base{ID: uuid.New(), CreatedAt: time.Now().Add(-3 * time.Hour)},
		Status: model.RecordStatusActive,
	}
	fresh := &model.ConsultationRecord{
		Base:   model.Base{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)},
		Status: model.RecordStatusActive,
	}

	var updated []*model.ConsultationRecord
	repo := &mockRecordRepo{
		ListActiveFn: func(ctx context.Context) ([]*model.ConsultationRecord, error) {
			return []*model.ConsultationRecord{stale, fresh}, nil
		},
		UpdateFn: func(ctx context.Context, record *model.ConsultationRecord) error {
			updated = append(updated, record)
			return nil
		},
	}

	w := NewConsultationSweeper(repo, time.Minute, maxAge, testMetrics, zerolog.Nop())
	require.NoError(t, w.sweep(context.Background()))

	require.Len(t, updated, 1)
	assert.Equal(t, stale.ID, updated[0].ID)
	assert.Equal(t, model.RecordStatusEnded, updated[0].Status)
	assert.Equal(t, model.ReasonEndedAuto, updated[0].ReasonEnded)
	assert.Equal(t, model.RecordStatusActive, fresh.Status)
}

func TestConsultationSweepUpdateFailureContinues(t *testing.T) {
	first := &model.ConsultationRecord{
		Base:   model.Base{ID: uuid.New(), CreatedAt: time.Now().Add(-4 * time.Hour)},
		Status: model.RecordStatusActive,
	}
	second := &model.ConsultationRecord{
		Base:   model.Base{ID: uuid.New(), CreatedAt: time.Now().Add(-4 * time.Hour)},
		Status: model.RecordStatusActive,
	}

	var updated []uuid.UUID
	repo := &mockRecordRepo{
		ListActiveFn: func(ctx context.Context) ([]*model.ConsultationRecord, error) {
			return []*model.ConsultationRecord{first, second}, nil
		},
		UpdateFn: func(ctx context.Context, record *model.ConsultationRecord) error {
			updated = append(updated, record.ID)
			if record.ID == first.ID {
				return assert.AnError
			}
			return nil
		},
	}

	w := NewConsultationSweeper(repo, time.Minute, 150*time.Minute, testMetrics, zerolog.Nop())
	require.NoError(t, w.sweep(context.Background()))
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, updated)
}
