package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/calendar"
	"github.com/zomujo/telemed-api/internal/model"
)

type mockSlotRepo struct {
	GetFn           func(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error)
	UpdateFn        func(ctx context.Context, slot *model.AppointmentSlot) error
	CreateFn        func(ctx context.Context, slot *model.AppointmentSlot) error
	ListAvailableFn func(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error)
	ListByDoctorFn  func(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*model.AppointmentSlot, error)
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *model.AppointmentSlot) error {
	return m.CreateFn(ctx, slot)
}
func (m *mockSlotRepo) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error) {
	return m.GetFn(ctx, id)
}
func (m *mockSlotRepo) Update(ctx context.Context, slot *model.AppointmentSlot) error {
	return m.UpdateFn(ctx, slot)
}
func (m *mockSlotRepo) ListAvailable(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error) {
	return m.ListAvailableFn(ctx, doctorID, from, to)
}
func (m *mockSlotRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*model.AppointmentSlot, error) {
	return m.ListByDoctorFn(ctx, doctorID, date)
}

type mockRequestRepo struct {
	CreateFn        func(ctx context.Context, req *model.AppointmentRequest) error
	GetFn           func(ctx context.Context, id uuid.UUID) (*model.AppointmentRequest, error)
	UpdateFn        func(ctx context.Context, req *model.AppointmentRequest) error
	ListBySlotFn    func(ctx context.Context, slotID uuid.UUID) ([]*model.AppointmentRequest, error)
	ListByPatientFn func(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentRequest, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, req *model.AppointmentRequest) error {
	return m.CreateFn(ctx, req)
}
func (m *mockRequestRepo) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentRequest, error) {
	return m.GetFn(ctx, id)
}
func (m *mockRequestRepo) Update(ctx context.Context, req *model.AppointmentRequest) error {
	return m.UpdateFn(ctx, req)
}
func (m *mockRequestRepo) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]*model.AppointmentRequest, error) {
	return m.ListBySlotFn(ctx, slotID)
}
func (m *mockRequestRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentRequest, error) {
	return m.ListByPatientFn(ctx, patientID)
}

type mockAppointmentRepo struct {
	CreateFn             func(ctx context.Context, apt *model.Appointment) error
	GetFn                func(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	UpdateFn             func(ctx context.Context, apt *model.Appointment) error
	ListFn               func(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	GetLatestAcceptedFn  func(ctx context.Context, doctorID, patientID uuid.UUID) (*model.Appointment, error)
	ListAcceptedBeforeFn func(ctx context.Context, date time.Time) ([]*model.Appointment, error)
}

func (m *mockAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	return m.CreateFn(ctx, apt)
}
func (m *mockAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return m.GetFn(ctx, id)
}
func (m *mockAppointmentRepo) Update(ctx context.Context, apt *model.Appointment) error {
	return m.UpdateFn(ctx, apt)
}
func (m *mockAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return m.ListFn(ctx, filters)
}
func (m *mockAppointmentRepo) GetLatestAccepted(ctx context.Context, doctorID, patientID uuid.UUID) (*model.Appointment, error) {
	return m.GetLatestAcceptedFn(ctx, doctorID, patientID)
}
func (m *mockAppointmentRepo) ListAcceptedBefore(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	return m.ListAcceptedBeforeFn(ctx, date)
}

type mockUserRepo struct {
	GetFn                func(ctx context.Context, id uuid.UUID) (*model.User, error)
	AddPatientToRosterFn func(ctx context.Context, doctorID, patientID uuid.UUID) error
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
	return m.AddPatientToRosterFn(ctx, doctorID, patientID)
}
func (m *mockUserRepo) ListRoster(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) Counts(ctx context.Context) (*model.AnalyticsCounts, error) { return nil, nil }

type mockCalendar struct {
	CreateMeetingFn func(ctx context.Context, event calendar.Event) (string, error)
}

func (m *mockCalendar) CreateMeeting(ctx context.Context, event calendar.Event) (string, error) {
	return m.CreateMeetingFn(ctx, event)
}

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
