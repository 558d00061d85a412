package consultation

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/middleware"
	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/service/consultation"
	"github.com/zomujo/telemed-api/pkg/errors"
	"github.com/zomujo/telemed-api/pkg/httputil"
)

type Handler struct {
	service *consultation.Service
}

func NewHandler(service *consultation.Service) *Handler {
	return &Handler{service: service}
}

type startRequest struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
}

type complaintsRequest struct {
	ConsultationID uuid.UUID `json:"consultation_id" binding:"required"`
	Complaints     []string  `json:"complaints" binding:"required,min=1"`
}

func (h *Handler) Start(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	record, err := h.service.Start(c.Request.Context(), doctorID, req.PatientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "consultation started", record)
}

func (h *Handler) Active(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	record, err := h.service.Active(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "active consultation", record)
}

func (h *Handler) SetStep(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req model.SetStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	record, err := h.service.SetStep(c.Request.Context(), doctorID, req.ConsultationID, req.Step)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "step updated", record)
}

func (h *Handler) AddComplaints(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req complaintsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	record, err := h.service.AddComplaints(c.Request.Context(), doctorID, req.ConsultationID, req.Complaints)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "complaints recorded", record)
}

func (h *Handler) Complete(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req model.CompleteConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	record, err := h.service.Complete(c.Request.Context(), doctorID, req.ConsultationID, req.Notes)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "consultation completed", record)
}

func (h *Handler) End(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req model.EndConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	record, err := h.service.End(c.Request.Context(), doctorID, req.ConsultationID, req.Reason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "consultation ended", record)
}

func (h *Handler) ScheduleFollowUp(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req model.ScheduleFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	visit, err := h.service.ScheduleFollowUp(c.Request.Context(), doctorID, req.ConsultationID, req.Message, req.SendMessageAt)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "follow-up scheduled", visit)
}
