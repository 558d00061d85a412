package consultation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/pkg/errors"
)

type mockRecordRepo struct {
	CreateFn            func(ctx context.Context, record *model.ConsultationRecord) error
	GetFn               func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error)
	UpdateFn            func(ctx context.Context, record *model.ConsultationRecord) error
	GetActiveByDoctorFn func(ctx context.Context, doctorID uuid.UUID) (*model.ConsultationRecord, error)
	ListActiveFn        func(ctx context.Context) ([]*model.ConsultationRecord, error)
	ListByPatientFn     func(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*model.ConsultationRecord, error)
}

func (m *mockRecordRepo) Create(ctx context.Context, record *model.ConsultationRecord) error {
	return m.CreateFn(ctx, record)
}
func (m *mockRecordRepo) Get(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
	return m.GetFn(ctx, id)
}
func (m *mockRecordRepo) Update(ctx context.Context, record *model.ConsultationRecord) error {
	return m.UpdateFn(ctx, record)
}
func (m *mockRecordRepo) GetActiveByDoctor(ctx context.Context, doctorID uuid.UUID) (*model.ConsultationRecord, error) {
	return m.GetActiveByDoctorFn(ctx, doctorID)
}
func (m *mockRecordRepo) ListActive(ctx context.Context) ([]*model.ConsultationRecord, error) {
	return m.ListActiveFn(ctx)
}
func (m *mockRecordRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*model.ConsultationRecord, error) {
	return m.ListByPatientFn(ctx, patientID, limit, offset)
}

type mockAppointmentRepo struct {
	GetLatestAcceptedFn func(ctx context.Context, doctorID, patientID uuid.UUID) (*model.Appointment, error)
	UpdateFn            func(ctx context.Context, apt *model.Appointment) error
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
	return m.GetLatestAcceptedFn(ctx, doctorID, patientID)
}
func (m *mockAppointmentRepo) ListAcceptedBefore(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	return nil, nil
}

type mockReviewRepo struct {
	CreateFn func(ctx context.Context, review *model.Review) error
}

func (m *mockReviewRepo) Create(ctx context.Context, review *model.Review) error {
	return m.CreateFn(ctx, review)
}
func (m *mockReviewRepo) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return nil, nil
}
func (m *mockReviewRepo) Update(ctx context.Context, review *model.Review) error { return nil }
func (m *mockReviewRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*model.Review, error) {
	return nil, nil
}
func (m *mockReviewRepo) AverageRating(ctx context.Context, doctorID uuid.UUID) (float64, error) {
	return 0, nil
}

type mockVisitRepo struct {
	CreateFn func(ctx context.Context, visit *model.FutureVisit) error
}

func (m *mockVisitRepo) Create(ctx context.Context, visit *model.FutureVisit) error {
	return m.CreateFn(ctx, visit)
}
func (m *mockVisitRepo) ListDueOn(ctx context.Context, day time.Time) ([]*model.FutureVisit, error) {
	return nil, nil
}

type fixture struct {
	records *mockRecordRepo
	appts   *mockAppointmentRepo
	reviews *mockReviewRepo
	visits  *mockVisitRepo
	service *Service
}

func newFixture() *fixture {
	f := &fixture{
		records: &mockRecordRepo{},
		appts:   &mockAppointmentRepo{},
		reviews: &mockReviewRepo{},
		visits:  &mockVisitRepo{},
	}
	f.service = NewService(f.records, f.appts, f.reviews, f.visits, zerolog.Nop())
	return f
}

func activeRecord(doctorID uuid.UUID) *model.ConsultationRecord {
	return &model.ConsultationRecord{
		Base:       model.Base{ID: uuid.New(), CreatedAt: time.Now()},
		DoctorID:   doctorID,
		PatientID:  uuid.New(),
		Status:     model.RecordStatusActive,
		Complaints: []string{},
	}
}

func TestStart(t *testing.T) {
	f := newFixture()
	doctorID := uuid.New()
	patientID := uuid.New()

	var created *model.ConsultationRecord
	f.records.GetActiveByDoctorFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return nil, nil
	}
	f.records.CreateFn = func(ctx context.Context, record *model.ConsultationRecord) error {
		created = record
		return nil
	}

	record, err := f.service.Start(context.Background(), doctorID, patientID)
	require.NoError(t, err)
	assert.Equal(t, created, record)
	assert.Equal(t, model.RecordStatusActive, record.Status)
	assert.Equal(t, 0, record.CurrentStep)
	assert.NotNil(t, record.Complaints)
	assert.Empty(t, record.Complaints)
}

func TestStartConflictsWhenActive(t *testing.T) {
	f := newFixture()
	doctorID := uuid.New()
	f.records.GetActiveByDoctorFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return activeRecord(doctorID), nil
	}

	_, err := f.service.Start(context.Background(), doctorID, uuid.New())
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestCompleteMarksAppointmentAndOpensReview(t *testing.T) {
	f := newFixture()
	doctorID := uuid.New()
	record := activeRecord(doctorID)
	apt := &model.Appointment{
		Base:     model.Base{ID: uuid.New()},
		DoctorID: doctorID,
		Status:   model.AppointmentStatusAccepted,
	}

	var updatedApt *model.Appointment
	var openedReview *model.Review

	f.records.GetFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return record, nil
	}
	f.records.UpdateFn = func(ctx context.Context, r *model.ConsultationRecord) error { return nil }
	f.appts.GetLatestAcceptedFn = func(ctx context.Context, dID, pID uuid.UUID) (*model.Appointment, error) {
		return apt, nil
	}
	f.appts.UpdateFn = func(ctx context.Context, a *model.Appointment) error {
		updatedApt = a
		return nil
	}
	f.reviews.CreateFn = func(ctx context.Context, review *model.Review) error {
		openedReview = review
		return nil
	}

	out, err := f.service.Complete(context.Background(), doctorID, record.ID, "resolved with medication")
	require.NoError(t, err)
	assert.Equal(t, model.RecordStatusCompleted, out.Status)
	assert.Equal(t, "resolved with medication", out.Notes)

	require.NotNil(t, updatedApt)
	assert.Equal(t, model.AppointmentStatusCompleted, updatedApt.Status)

	require.NotNil(t, openedReview)
	assert.Equal(t, record.DoctorID, openedReview.DoctorID)
	assert.Equal(t, record.PatientID, openedReview.PatientID)
	assert.Equal(t, record.ID, openedReview.ConsultationID)
	assert.Equal(t, model.ReviewStatusPending, openedReview.Status)
}

func TestCompleteSurvivesReviewFailure(t *testing.T) {
	f := newFixture()
	doctorID := uuid.New()
	record := activeRecord(doctorID)

	f.records.GetFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return record, nil
	}
	f.records.UpdateFn = func(ctx context.Context, r *model.ConsultationRecord) error { return nil }
	f.appts.GetLatestAcceptedFn = func(ctx context.Context, dID, pID uuid.UUID) (*model.Appointment, error) {
		return nil, nil
	}
	f.reviews.CreateFn = func(ctx context.Context, review *model.Review) error { return assert.AnError }

	out, err := f.service.Complete(context.Background(), doctorID, record.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.RecordStatusCompleted, out.Status)
}

func TestCompleteNotActive(t *testing.T) {
	f := newFixture()
	doctorID := uuid.New()
	record := activeRecord(doctorID)
	record.Status = model.RecordStatusEnded

	f.records.GetFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return record, nil
	}

	_, err := f.service.Complete(context.Background(), doctorID, record.ID, "")
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestEndStillCompletesAppointment(t *testing.T) {
	f := newFixture()
	doctorID := uuid.New()
	record := activeRecord(doctorID)
	apt := &model.Appointment{Base: model.Base{ID: uuid.New()}, Status: model.AppointmentStatusAccepted}

	var updatedApt *model.Appointment
	reviewOpened := false

	f.records.GetFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return record, nil
	}
	f.records.UpdateFn = func(ctx context.Context, r *model.ConsultationRecord) error { return nil }
	f.appts.GetLatestAcceptedFn = func(ctx context.Context, dID, pID uuid.UUID) (*model.Appointment, error) {
		return apt, nil
	}
	f.appts.UpdateFn = func(ctx context.Context, a *model.Appointment) error {
		updatedApt = a
		return nil
	}
	f.reviews.CreateFn = func(ctx context.Context, review *model.Review) error {
		reviewOpened = true
		return nil
	}

	out, err := f.service.End(context.Background(), doctorID, record.ID, "patient dropped off")
	require.NoError(t, err)
	assert.Equal(t, model.RecordStatusEnded, out.Status)
	assert.Equal(t, "patient dropped off", out.ReasonEnded)

	require.NotNil(t, updatedApt)
	assert.Equal(t, model.AppointmentStatusCompleted, updatedApt.Status)
	assert.False(t, reviewOpened, "ending early must not open a review")
}

func TestSetStepUnvalidated(t *testing.T) {
	f := newFixture()
	doctorID := uuid.New()
	record := activeRecord(doctorID)

	f.records.GetFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return record, nil
	}
	f.records.UpdateFn = func(ctx context.Context, r *model.ConsultationRecord) error { return nil }

	out, err := f.service.SetStep(context.Background(), doctorID, record.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, out.CurrentStep)
}

func TestAddComplaintsAppends(t *testing.T) {
	f := newFixture()
	doctorID := uuid.New()
	record := activeRecord(doctorID)
	record.Complaints = []string{"fever"}

	f.records.GetFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return record, nil
	}
	f.records.UpdateFn = func(ctx context.Context, r *model.ConsultationRecord) error { return nil }

	out, err := f.service.AddComplaints(context.Background(), doctorID, record.ID, []string{"cough", "fatigue"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fever", "cough", "fatigue"}, []string(out.Complaints))
}

func TestWrongDoctorUnauthorized(t *testing.T) {
	f := newFixture()
	record := activeRecord(uuid.New())

	f.records.GetFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return record, nil
	}

	_, err := f.service.SetStep(context.Background(), uuid.New(), record.ID, 1)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestScheduleFollowUp(t *testing.T) {
	f := newFixture()
	doctorID := uuid.New()
	record := activeRecord(doctorID)
	sendAt := time.Now().AddDate(0, 0, 14)

	var created *model.FutureVisit
	f.records.GetFn = func(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error) {
		return record, nil
	}
	f.visits.CreateFn = func(ctx context.Context, visit *model.FutureVisit) error {
		created = visit
		return nil
	}

	visit, err := f.service.ScheduleFollowUp(context.Background(), doctorID, record.ID, "Time for your follow-up", sendAt)
	require.NoError(t, err)
	assert.Equal(t, created, visit)
	assert.Equal(t, record.ID, visit.ConsultationID)
	assert.Equal(t, record.PatientID, visit.PatientID)
	assert.Equal(t, sendAt, visit.SendMessageAt)
}
