package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/zomujo/telemed-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type slotRepository struct {
	db *sqlx.DB
}

type appointmentRequestRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type recordRepository struct {
	db *sqlx.DB
}

type notificationRepository struct {
	db *sqlx.DB
}

type referralRepository struct {
	db *sqlx.DB
}

type reviewRepository struct {
	db *sqlx.DB
}

type referenceRepository struct {
	db *sqlx.DB
}

type transactionRepository struct {
	db *sqlx.DB
}

type futureVisitRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewSlotRepository(db *sqlx.DB) repository.SlotRepository {
	return &slotRepository{db: db}
}

func NewAppointmentRequestRepository(db *sqlx.DB) repository.AppointmentRequestRepository {
	return &appointmentRequestRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewRecordRepository(db *sqlx.DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func NewReferralRepository(db *sqlx.DB) repository.ReferralRepository {
	return &referralRepository{db: db}
}

func NewReviewRepository(db *sqlx.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func NewReferenceRepository(db *sqlx.DB) repository.ReferenceRepository {
	return &referenceRepository{db: db}
}

func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func NewFutureVisitRepository(db *sqlx.DB) repository.FutureVisitRepository {
	return &futureVisitRepository{db: db}
}
