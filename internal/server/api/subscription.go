package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/server/biz"
)

type SubscriptionHandlersParams struct {
	fx.In

	SubscriptionService *biz.SubscriptionService
}

func NewSubscriptionHandlers(params SubscriptionHandlersParams) *SubscriptionHandlers {
	return &SubscriptionHandlers{
		SubscriptionService: params.SubscriptionService,
	}
}

type SubscriptionHandlers struct {
	SubscriptionService *biz.SubscriptionService
}

type subscriptionRequest struct {
	UserID    string `json:"user_id"`
	ProductID int    `json:"product_id"`
}

// List handles GET /api/subscriptions, optionally filtered by user_id.
func (h *SubscriptionHandlers) List(c *gin.Context) {
	subs, err := h.SubscriptionService.List(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

// Grant handles POST /api/subscriptions.
func (h *SubscriptionHandlers) Grant(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	if req.UserID == "" || req.ProductID == 0 {
		JSONError(c, http.StatusBadRequest, errors.New("Missing user_id or product_id"))
		return
	}

	sub, err := h.SubscriptionService.Grant(c.Request.Context(), req.UserID, req.ProductID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// Revoke handles DELETE /api/subscriptions. It must match both user and
// product exactly, else 404.
func (h *SubscriptionHandlers) Revoke(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	if req.UserID == "" || req.ProductID == 0 {
		JSONError(c, http.StatusBadRequest, errors.New("Missing user_id or product_id"))
		return
	}

	if err := h.SubscriptionService.Revoke(c.Request.Context(), req.UserID, req.ProductID); err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}
