package admin

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/middleware"
	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/service/admin"
	"github.com/zomujo/telemed-api/pkg/errors"
	"github.com/zomujo/telemed-api/pkg/httputil"
)

type Handler struct {
	service *admin.Service
}

func NewHandler(service *admin.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateSymptom(c *gin.Context) {
	var req model.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	symptom, err := h.service.CreateSymptom(c.Request.Context(), req.Name)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "symptom created", symptom)
}

func (h *Handler) ListSymptoms(c *gin.Context) {
	symptoms, err := h.service.ListSymptoms(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "symptoms", symptoms)
}

func (h *Handler) DeleteSymptom(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteSymptom, "symptom deleted")
}

func (h *Handler) CreateMedicine(c *gin.Context) {
	var req model.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	medicine, err := h.service.CreateMedicine(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "medicine created", medicine)
}

func (h *Handler) ListMedicines(c *gin.Context) {
	medicines, err := h.service.ListMedicines(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "medicines", medicines)
}

func (h *Handler) DeleteMedicine(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteMedicine, "medicine deleted")
}

func (h *Handler) CreateICDCode(c *gin.Context) {
	var req model.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}
	if req.Code == "" {
		httputil.RespondWithError(c, errors.BadRequest("code is required", nil))
		return
	}

	icd, err := h.service.CreateICDCode(c.Request.Context(), req.Code, req.Description)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "ICD code created", icd)
}

func (h *Handler) ListICDCodes(c *gin.Context) {
	codes, err := h.service.ListICDCodes(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "ICD codes", codes)
}

func (h *Handler) DeleteICDCode(c *gin.Context) {
	h.deleteByID(c, h.service.DeleteICDCode, "ICD code deleted")
}

type reportIssueRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

func (h *Handler) ReportIssue(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req reportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	issue, err := h.service.ReportIssue(c.Request.Context(), userID.String(), req.Subject, req.Body)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "issue reported", issue)
}

func (h *Handler) ListIssues(c *gin.Context) {
	issues, err := h.service.ListIssues(c.Request.Context(), model.IssueStatus(c.Query("status")))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "issues", issues)
}

func (h *Handler) ResolveIssue(c *gin.Context) {
	h.deleteByID(c, h.service.ResolveIssue, "issue resolved")
}

func (h *Handler) Counts(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "analytics", counts)
}

func (h *Handler) deleteByID(c *gin.Context, action func(context.Context, uuid.UUID) error, message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid id", err))
		return
	}

	if err := action(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, message, nil)
}
