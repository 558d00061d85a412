package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

type User struct {
	Base
	Role             Role       `db:"role" json:"role"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastName         string     `db:"last_name" json:"last_name"`
	Phone            string     `db:"phone" json:"phone,omitempty"`
	ProfilePicture   string     `db:"profile_picture" json:"profile_picture,omitempty"`
	Status           UserStatus `db:"status" json:"status"`
	EmailVerified    bool       `db:"email_verified" json:"email_verified"`
	VerificationCode string     `db:"verification_code" json:"-"`
	LastLoginAt      *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

// DoctorProfile extends a doctor user with clinical fields.
type DoctorProfile struct {
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Specialty     string    `db:"specialty" json:"specialty"`
	Bio           string    `db:"bio" json:"bio,omitempty"`
	Rate          float64   `db:"rate" json:"rate"`
	Rating        float64   `db:"rating" json:"rating"`
	Verified      bool      `db:"verified" json:"verified"`
	NoOfConsults  int       `db:"no_of_consults" json:"no_of_consults"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Doctor is the joined view used by search and slot listings.
type Doctor struct {
	User
	Specialty string  `db:"specialty" json:"specialty"`
	Rate      float64 `db:"rate" json:"rate"`
	Rating    float64 `db:"rating" json:"rating"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	Specialty string `json:"specialty"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
	User         *User  `json:"user,omitempty"`
}

type DoctorSearchFilters struct {
	Query     string
	Specialty string
	Limit     int
	Offset    int
}
