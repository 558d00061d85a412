package referral

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zomujo/telemed-api/internal/middleware"
	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/service/referral"
	"github.com/zomujo/telemed-api/pkg/errors"
	"github.com/zomujo/telemed-api/pkg/httputil"
)

type Handler struct {
	service *referral.Service
}

func NewHandler(service *referral.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Refer(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	var req model.ReferPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	created, err := h.service.Refer(c.Request.Context(), doctorID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "referral created", created)
}

func (h *Handler) Accept(c *gin.Context) {
	h.resolve(c, h.service.Accept, "referral accepted")
}

func (h *Handler) Decline(c *gin.Context) {
	h.resolve(c, h.service.Decline, "referral declined")
}

func (h *Handler) resolve(c *gin.Context, action func(context.Context, uuid.UUID, uuid.UUID) (*model.Referral, error), message string) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	referralID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid referral id", err))
		return
	}

	updated, err := action(c.Request.Context(), doctorID, referralID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, message, updated)
}

func (h *Handler) ListSent(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	referrals, err := h.service.ListSent(c.Request.Context(), doctorID, model.ReferralStatus(c.Query("status")))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "referrals", referrals)
}

func (h *Handler) ListReceived(c *gin.Context) {
	doctorID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	referrals, err := h.service.ListReceived(c.Request.Context(), doctorID, model.ReferralStatus(c.Query("status")))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "referrals", referrals)
}
