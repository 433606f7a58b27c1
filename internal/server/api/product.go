package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/server/biz"
)

type ProductHandlersParams struct {
	fx.In

	ProductService *biz.ProductService
}

func NewProductHandlers(params ProductHandlersParams) *ProductHandlers {
	return &ProductHandlers{
		ProductService: params.ProductService,
	}
}

type ProductHandlers struct {
	ProductService *biz.ProductService
}

// List handles GET /api/products.
func (h *ProductHandlers) List(c *gin.Context) {
	products, err := h.ProductService.List(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}
