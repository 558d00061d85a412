package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	CreateDoctorProfile(ctx context.Context, profile *model.DoctorProfile) error
	GetDoctorProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
	UpdateDoctorRating(ctx context.Context, doctorID uuid.UUID, rating float64) error
	SearchDoctors(ctx context.Context, filters *model.DoctorSearchFilters) ([]*model.Doctor, error)
	AddPatientToRoster(ctx context.Context, doctorID, patientID uuid.UUID) error
	ListRoster(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*model.User, error)
	Counts(ctx context.Context) (*model.AnalyticsCounts, error)
}

type SlotRepository interface {
	Create(ctx context.Context, slot *model.AppointmentSlot) error
	Get(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error)
	Update(ctx context.Context, slot *model.AppointmentSlot) error
	ListAvailable(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*model.AppointmentSlot, error)
}

type AppointmentRequestRepository interface {
	Create(ctx context.Context, req *model.AppointmentRequest) error
	Get(ctx context.Context, id uuid.UUID) (*model.AppointmentRequest, error)
	Update(ctx context.Context, req *model.AppointmentRequest) error
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]*model.AppointmentRequest, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentRequest, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	GetLatestAccepted(ctx context.Context, doctorID, patientID uuid.UUID) (*model.Appointment, error)
	ListAcceptedBefore(ctx context.Context, date time.Time) ([]*model.Appointment, error)
}

type RecordRepository interface {
	Create(ctx context.Context, record *model.ConsultationRecord) error
	Get(ctx context.Context, id uuid.UUID) (*model.ConsultationRecord, error)
	Update(ctx context.Context, record *model.ConsultationRecord) error
	GetActiveByDoctor(ctx context.Context, doctorID uuid.UUID) (*model.ConsultationRecord, error)
	ListActive(ctx context.Context) ([]*model.ConsultationRecord, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*model.ConsultationRecord, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*model.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReferralRepository interface {
	Create(ctx context.Context, referral *model.Referral) error
	Get(ctx context.Context, id uuid.UUID) (*model.Referral, error)
	Update(ctx context.Context, referral *model.Referral) error
	ListByReferrer(ctx context.Context, doctorID uuid.UUID, status model.ReferralStatus) ([]*model.Referral, error)
	ListByReferred(ctx context.Context, doctorID uuid.UUID, status model.ReferralStatus) ([]*model.Referral, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Get(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*model.Review, error)
	AverageRating(ctx context.Context, doctorID uuid.UUID) (float64, error)
}

type ReferenceRepository interface {
	CreateSymptom(ctx context.Context, s *model.Symptom) error
	ListSymptoms(ctx context.Context) ([]*model.Symptom, error)
	DeleteSymptom(ctx context.Context, id uuid.UUID) error
	CreateMedicine(ctx context.Context, m *model.Medicine) error
	ListMedicines(ctx context.Context) ([]*model.Medicine, error)
	DeleteMedicine(ctx context.Context, id uuid.UUID) error
	CreateICDCode(ctx context.Context, c *model.ICDCode) error
	ListICDCodes(ctx context.Context) ([]*model.ICDCode, error)
	DeleteICDCode(ctx context.Context, id uuid.UUID) error
	CreateIssue(ctx context.Context, issue *model.Issue) error
	ListIssues(ctx context.Context, status model.IssueStatus) ([]*model.Issue, error)
	UpdateIssue(ctx context.Context, issue *model.Issue) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	GetByReference(ctx context.Context, reference string) (*model.Transaction, error)
	Update(ctx context.Context, tx *model.Transaction) error
}

type FutureVisitRepository interface {
	Create(ctx context.Context, visit *model.FutureVisit) error
	ListDueOn(ctx context.Context, day time.Time) ([]*model.FutureVisit, error)
}
