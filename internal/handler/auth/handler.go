package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zomujo/telemed-api/internal/model"
	"github.com/zomujo/telemed-api/internal/service/auth"
	"github.com/zomujo/telemed-api/pkg/httputil"
)

const refreshCookie = "refresh_token"

type Handler struct {
	service          *auth.Service
	refreshMaxAgeSec int
}

func NewHandler(service *auth.Service, refreshExpiryHours int) *Handler {
	return &Handler{
		service:          service,
		refreshMaxAgeSec: refreshExpiryHours * 3600,
	}
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	h.register(c, model.RolePatient)
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	h.register(c, model.RoleDoctor)
}

func (h *Handler) register(c *gin.Context, role model.Role) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	tokens, err := h.service.Register(c.Request.Context(), role, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	httputil.RespondWithCreated(c, "registered", tokens)
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	var req model.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	if err := h.service.VerifyEmail(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "email verified", nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	httputil.RespondWithSuccess(c, "logged in", tokens)
}

func (h *Handler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(refreshCookie)
	if err != nil || refresh == "" {
		c.JSON(http.StatusUnauthorized, httputil.Response{
			Status:  "error",
			Message: "missing refresh token",
			Error: &httputil.Error{
				Code:    http.StatusUnauthorized,
				Message: "missing refresh token",
			},
		})
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), refresh)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	httputil.RespondWithSuccess(c, "refreshed", tokens)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(refreshCookie, "", -1, "/", "", true, true)
	httputil.RespondWithSuccess(c, "logged out", nil)
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, token, h.refreshMaxAgeSec, "/", "", true, true)
}
