package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/contexts"
	"github.com/SyedFrazAli/geoscope/internal/server/biz"
)

type ObservationHandlersParams struct {
	fx.In

	ObservationService *biz.ObservationService
	UsageService       *biz.UsageService
}

func NewObservationHandlers(params ObservationHandlersParams) *ObservationHandlers {
	return &ObservationHandlers{
		ObservationService: params.ObservationService,
		UsageService:       params.UsageService,
	}
}

type ObservationHandlers struct {
	ObservationService *biz.ObservationService
	UsageService       *biz.UsageService
}

// Create handles POST /api/observations. Creation is unauthenticated and
// accepts only product_id, value, timestamp and confidence.
func (h *ObservationHandlers) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var input biz.CreateObservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	id, err := h.ObservationService.Create(ctx, input)
	if err != nil {
		ServiceError(c, err)
		return
	}

	h.UsageService.Log(ctx, "POST /api/observations")

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// List handles GET /api/observations. The caller sees only records owned by
// subscribed products; no grants means an empty list, not an error.
func (h *ObservationHandlers) List(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := contexts.GetUserID(ctx)
	if !ok {
		JSONError(c, http.StatusUnauthorized, errors.New("missing caller identity"))
		return
	}

	observations, err := h.ObservationService.ListVisible(ctx, userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	h.UsageService.Log(ctx, "GET /api/observations")

	c.JSON(http.StatusOK, observations)
}

// Get handles GET /api/observations/:id. Unlike List, an unentitled caller
// is denied with 403 here.
func (h *ObservationHandlers) Get(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := contexts.GetUserID(ctx)
	if !ok {
		JSONError(c, http.StatusUnauthorized, errors.New("missing caller identity"))
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("id must be an integer"))
		return
	}

	observation, err := h.ObservationService.GetVisible(ctx, userID, id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	h.UsageService.Log(ctx, "GET /api/observations/:id")

	c.JSON(http.StatusOK, observation)
}

// Update handles PUT /api/observations/:id, applying a partial field update.
// Unknown keys are silently ignored.
func (h *ObservationHandlers) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("id must be an integer"))
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	if err := h.ObservationService.Update(ctx, id, fields); err != nil {
		ServiceError(c, err)
		return
	}

	h.UsageService.Log(ctx, "PUT /api/observations/:id")

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// Delete handles DELETE /api/observations/:id.
func (h *ObservationHandlers) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("id must be an integer"))
		return
	}

	if err := h.ObservationService.Delete(ctx, id); err != nil {
		ServiceError(c, err)
		return
	}

	h.UsageService.Log(ctx, "DELETE /api/observations/:id")

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// GetBulk handles GET /api/v1/bulk/insights?ids=1,2,3, fetching several
// records in one request with per-id failure metadata.
func (h *ObservationHandlers) GetBulk(c *gin.Context) {
	ctx := c.Request.Context()

	idsParam := c.Query("ids")
	if idsParam == "" {
		JSONError(c, http.StatusBadRequest,
			errors.New("Please provide a comma-separated list of IDs in the 'ids' query parameter."))
		return
	}

	var ids []int

	for _, raw := range strings.Split(idsParam, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			JSONError(c, http.StatusBadRequest, errors.New("IDs must be numeric."))
			return
		}

		ids = append(ids, id)
	}

	result, err := h.ObservationService.GetBulk(ctx, ids)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
