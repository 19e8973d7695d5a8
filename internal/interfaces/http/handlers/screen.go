package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/raceday/pro-upgrade/internal/application/session"
	"github.com/raceday/pro-upgrade/internal/domain/store"
	"github.com/raceday/pro-upgrade/internal/interfaces/http/response"
)

// ScreenHandler serves the upgrade screen and its two user actions.
type ScreenHandler struct {
	sessions *session.Manager
}

// NewScreenHandler creates a new screen handler
func NewScreenHandler(sessions *session.Manager) *ScreenHandler {
	return &ScreenHandler{sessions: sessions}
}

type purchaseRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetScreen returns the current upgrade screen view
// @Summary Render the upgrade screen
// @Tags screen
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=screen.View}
// @Failure 401 {object} response.ErrorResponse
// @Router /screen/upgrade [get]
func (h *ScreenHandler) GetScreen(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	sc := h.sessions.Get(c.Request.Context(), userID)
	response.OK(c, sc.Render())
}

// Purchase runs a purchase of the requested product
// @Summary Purchase a Pro product
// @Tags screen
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body purchaseRequest true "Purchase request"
// @Success 200 {object} response.SuccessResponse{data=screen.View}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /screen/upgrade/purchase [post]
func (h *ScreenHandler) Purchase(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	sc := h.sessions.Get(c.Request.Context(), userID)
	if err := sc.HandlePurchase(c.Request.Context(), req.ProductID); err != nil {
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			response.NotFound(c, "Unknown product")
		case errors.Is(err, store.ErrOperationInFlight):
			response.Conflict(c, "A purchase or restore is already in progress")
		default:
			response.InternalError(c, err.Error())
		}
		return
	}

	response.OK(c, sc.Render())
}

// Restore restores previously completed purchases
// @Summary Restore purchases
// @Tags screen
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=screen.View}
// @Failure 409 {object} response.ErrorResponse
// @Router /screen/upgrade/restore [post]
func (h *ScreenHandler) Restore(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	sc := h.sessions.Get(c.Request.Context(), userID)
	if err := sc.HandleRestore(c.Request.Context()); err != nil {
		if errors.Is(err, store.ErrOperationInFlight) {
			response.Conflict(c, "A purchase or restore is already in progress")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.OK(c, sc.Render())
}

// Reload retries product loading after a load error
// @Summary Retry loading the product catalog
// @Tags screen
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=screen.View}
// @Router /screen/upgrade/reload [post]
func (h *ScreenHandler) Reload(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	sc := h.sessions.Get(c.Request.Context(), userID)
	sc.ReloadProducts(c.Request.Context())
	response.OK(c, sc.Render())
}

// DismissAlert acknowledges one of the three screen alerts
// @Summary Dismiss a screen alert
// @Tags screen
// @Produce json
// @Security Bearer
// @Param alert path string true "Alert name" Enums(success, restore, error)
// @Success 200 {object} response.SuccessResponse{data=screen.View}
// @Success 204 "Screen closed"
// @Failure 400 {object} response.ErrorResponse
// @Router /screen/upgrade/alerts/{alert}/dismiss [post]
func (h *ScreenHandler) DismissAlert(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	sc := h.sessions.Get(c.Request.Context(), userID)
	switch c.Param("alert") {
	case "success":
		// Acknowledging the success alert closes the screen.
		sc.DismissSuccessAlert()
		h.sessions.Close(userID)
		response.NoContent(c)
	case "restore":
		sc.DismissRestoreAlert()
		response.OK(c, sc.Render())
	case "error":
		sc.DismissErrorAlert()
		response.OK(c, sc.Render())
	default:
		response.BadRequest(c, "Unknown alert")
	}
}
