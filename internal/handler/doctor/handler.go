package doctor

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/middleware"
	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/service/doctor"
	"github.com/zomujo/telemed-api/internal/service/slot"
	"github.com/zomujo/telemed-api/pkg/errors"
	"github.com/zomujo/telemed-api/pkg/httputil"
)

type Handler struct {
	doctors *doctor.Service
	slots   *slot.Service
}

func NewHandler(doctors *doctor.Service, slots *slot.Service) *Handler {
	return &Handler{doctors: doctors, slots: slots}
}

// Search is the patient-facing doctor directory.
func (h *Handler) Search(c *gin.Context) {
	filters := &model.DoctorSearchFilters{
		Query:     c.Query("q"),
		Specialty: c.Query("specialty"),
		Limit:     intQuery(c, "limit", 20),
		Offset:    intQuery(c, "offset", 0),
	}

	doctors, err := h.doctors.Search(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "doctors", doctors)
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor id", err))
		return
	}

	user, profile, err := h.doctors.GetProfile(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "doctor", gin.H{"user": user, "profile": profile})
}

func (h *Handler) CreateSlot(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req model.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	created, err := h.slots.CreateSlot(c.Request.Context(), doctorID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "slot created", created)
}

// ListSlots returns the authenticated doctor's slots, optionally for one day.
func (h *Handler) ListSlots(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid date", err))
			return
		}
		date = &parsed
	}

	slots, err := h.slots.ListSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "slots", slots)
}

// ListAvailableSlots is the patient-facing view of a doctor's open slots.
func (h *Handler) ListAvailableSlots(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor id", err))
		return
	}

	from := time.Now()
	to := from.AddDate(0, 1, 0)
	if raw := c.Query("from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			from = parsed
		}
	}
	if raw := c.Query("to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			to = parsed
		}
	}

	slots, err := h.slots.ListAvailable(c.Request.Context(), doctorID, from, to)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "available slots", slots)
}

func (h *Handler) ListRoster(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	patients, err := h.doctors.ListRoster(c.Request.Context(), doctorID,
		intQuery(c, "limit", 20), intQuery(c, "offset", 0))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "patients", patients)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
