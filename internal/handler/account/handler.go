package account

import (
	"github.com/gin-gonic/gin"

	"github.com/zomujo/telemed-api/internal/middleware"
	"github.com/zomujo/telemed-api/internal/service/account"
	"github.com/zomujo/telemed-api/pkg/errors"
	"github.com/zomujo/telemed-api/pkg/httputil"
)

const maxPictureSize = 5 << 20

type Handler struct {
	service *account.Service
}

func NewHandler(service *account.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	user, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "account", user)
}

func (h *Handler) UploadProfilePicture(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("picture file is required", err))
		return
	}
	if fileHeader.Size > maxPictureSize {
		httputil.RespondWithError(c, errors.BadRequest("picture exceeds 5MB", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("unreadable picture file", err))
		return
	}
	defer file.Close()

	user, err := h.service.UpdateProfilePicture(c.Request.Context(), userID, file, fileHeader.Filename)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "profile picture updated", user)
}
