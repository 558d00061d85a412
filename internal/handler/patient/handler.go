package patient

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/middleware"
	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/service/appointment"
	"github.com/zomujo/telemed-api/internal/service/consultation"
	"github.com/zomujo/telemed-api/internal/service/review"
	"github.com/zomujo/telemed-api/pkg/errors"
	"github.com/zomujo/telemed-api/pkg/httputil"
)

type Handler struct {
	appointments  *appointment.Service
	consultations *consultation.Service
	reviews       *review.Service
}

func NewHandler(appointments *appointment.Service, consultations *consultation.Service, reviews *review.Service) *Handler {
	return &Handler{
		appointments:  appointments,
		consultations: consultations,
		reviews:       reviews,
	}
}

func (h *Handler) RequestAppointment(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req model.RequestAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.appointments.RequestAppointment(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "appointment booked", apt)
}

func (h *Handler) CancelRequest(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request id", err))
		return
	}

	if err := h.appointments.CancelRequest(c.Request.Context(), patientID, requestID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "request cancelled", nil)
}

func (h *Handler) RescheduleRequest(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request id", err))
		return
	}

	var req model.RescheduleRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	if err := h.appointments.RescheduleRequest(c.Request.Context(), patientID, requestID, req.SlotID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "request rescheduled", nil)
}

func (h *Handler) ListRequests(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	requests, err := h.appointments.ListRequests(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "requests", requests)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	filters := &model.AppointmentFilters{
		PatientID: patientID,
		Status:    model.AppointmentStatus(c.Query("status")),
		Limit:     intQuery(c, "limit", 20),
		Offset:    intQuery(c, "offset", 0),
	}

	appointments, err := h.appointments.ListAppointments(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "appointments", appointments)
}

func (h *Handler) ConsultationHistory(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	records, err := h.consultations.History(c.Request.Context(), patientID,
		intQuery(c, "limit", 20), intQuery(c, "offset", 0))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "consultations", records)
}

func (h *Handler) SubmitReview(c *gin.Context) {
	patientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid review id", err))
		return
	}

	var req model.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	submitted, err := h.reviews.Submit(c.Request.Context(), patientID, reviewID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "review submitted", submitted)
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
