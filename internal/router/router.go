package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zomujo/telemed-api/internal/handler/account"
	"github.com/zomujo/telemed-api/internal/handler/admin"
	"github.com/zomujo/telemed-api/internal/handler/auth"
	"github.com/zomujo/telemed-api/internal/handler/consultation"
	"github.com/zomujo/telemed-api/internal/handler/doctor"
	"github.com/zomujo/telemed-api/internal/handler/health"
	"github.com/zomujo/telemed-api/internal/handler/notification"
	"github.com/zomujo/telemed-api/internal/handler/patient"
	"github.com/zomujo/telemed-api/internal/handler/payment"
	"github.com/zomujo/telemed-api/internal/handler/referral"
	"github.com/zomujo/telemed-api/internal/middleware"
	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/pkg/metrics"
)

type Config struct {
	RateLimitEnabled  bool
	RequestsPerSecond float64
	Burst             int
	CORS              middleware.CORSConfig
	MetricsPath       string
	PrometheusEnabled bool
}

type Handlers struct {
	Health       *health.Handler
	Account      *account.Handler
	Auth         *auth.Handler
	Doctor       *doctor.Handler
	Patient      *patient.Handler
	Consultation *consultation.Handler
	Referral     *referral.Handler
	Notification *notification.Handler
	Payment      *payment.Handler
	Admin        *admin.Handler
}

// New assembles the gin engine with the full middleware chain and route tree.
func New(h Handlers, authMw *middleware.AuthMiddleware, m *metrics.Metrics, cfg Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(m))
	engine.Use(middleware.CORS(cfg.CORS))
	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst)
		engine.Use(limiter.RateLimit())
	}

	engine.GET("/health", h.Health.Health)
	if cfg.PrometheusEnabled {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	v1 := engine.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/patients/register", h.Auth.RegisterPatient)
		authGroup.POST("/doctors/register", h.Auth.RegisterDoctor)
		authGroup.POST("/verify", h.Auth.VerifyEmail)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	// Public doctor directory.
	v1.GET("/doctors", h.Doctor.Search)
	v1.GET("/doctors/:id", h.Doctor.GetProfile)
	v1.GET("/doctors/:id/slots", h.Doctor.ListAvailableSlots)

	authed := v1.Group("")
	authed.Use(authMw.Authenticate())
	{
		authed.GET("/notifications/stream", h.Notification.Stream)
		authed.GET("/me", h.Account.Me)
		authed.POST("/me/picture", h.Account.UploadProfilePicture)
	}

	doctors := authed.Group("/doctor")
	doctors.Use(authMw.RequireRole(model.RoleDoctor))
	{
		doctors.POST("/slots", h.Doctor.CreateSlot)
		doctors.GET("/slots", h.Doctor.ListSlots)
		doctors.GET("/patients", h.Doctor.ListRoster)

		doctors.POST("/consultations", h.Consultation.Start)
		doctors.GET("/consultations/active", h.Consultation.Active)
		doctors.PATCH("/consultations/step", h.Consultation.SetStep)
		doctors.PATCH("/consultations/complaints", h.Consultation.AddComplaints)
		doctors.POST("/consultations/complete", h.Consultation.Complete)
		doctors.POST("/consultations/end", h.Consultation.End)
		doctors.POST("/consultations/follow-up", h.Consultation.ScheduleFollowUp)

		doctors.POST("/referrals", h.Referral.Refer)
		doctors.GET("/referrals/sent", h.Referral.ListSent)
		doctors.GET("/referrals/received", h.Referral.ListReceived)
		doctors.POST("/referrals/:id/accept", h.Referral.Accept)
		doctors.POST("/referrals/:id/decline", h.Referral.Decline)

		doctors.POST("/withdrawals", h.Payment.Withdraw)
	}

	patients := authed.Group("/patient")
	patients.Use(authMw.RequireRole(model.RolePatient))
	{
		patients.POST("/appointments/requests", h.Patient.RequestAppointment)
		patients.GET("/appointments/requests", h.Patient.ListRequests)
		patients.POST("/appointments/requests/:id/cancel", h.Patient.CancelRequest)
		patients.PATCH("/appointments/requests/:id/reschedule", h.Patient.RescheduleRequest)
		patients.GET("/appointments", h.Patient.ListAppointments)
		patients.GET("/consultations", h.Patient.ConsultationHistory)
		patients.POST("/reviews/:id", h.Patient.SubmitReview)

		patients.POST("/payments", h.Payment.Initiate)
		patients.GET("/payments/verify/:reference", h.Payment.Verify)
	}

	// Bank directory used by the withdrawal form.
	authed.GET("/payments/banks", h.Payment.ListBanks)

	admins := authed.Group("/admin")
	admins.Use(authMw.RequireRole(model.RoleAdmin))
	{
		admins.POST("/symptoms", h.Admin.CreateSymptom)
		admins.GET("/symptoms", h.Admin.ListSymptoms)
		admins.DELETE("/symptoms/:id", h.Admin.DeleteSymptom)

		admins.POST("/medicines", h.Admin.CreateMedicine)
		admins.GET("/medicines", h.Admin.ListMedicines)
		admins.DELETE("/medicines/:id", h.Admin.DeleteMedicine)

		admins.POST("/icd-codes", h.Admin.CreateICDCode)
		admins.GET("/icd-codes", h.Admin.ListICDCodes)
		admins.DELETE("/icd-codes/:id", h.Admin.DeleteICDCode)

		admins.GET("/issues", h.Admin.ListIssues)
		admins.POST("/issues/:id/resolve", h.Admin.ResolveIssue)

		admins.GET("/analytics", h.Admin.Counts)
	}

	// Any authenticated user can file an issue.
	authed.POST("/issues", h.Admin.ReportIssue)

	return engine
}
