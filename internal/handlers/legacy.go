// internal/handlers/legacy.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gamevault/gamestore-backend/internal/legacy"
	"github.com/gamevault/gamestore-backend/internal/utils"
)

// LegacyHandler exposes read-only views of the legacy mirror for store
// staff: what remains to be reconciled and the shipper directory that is
// never migrated.
type LegacyHandler struct {
	store legacy.Store
}

func NewLegacyHandler(store legacy.Store) *LegacyHandler {
	return &LegacyHandler{store: store}
}

// GET /admin/legacy/products
func (h *LegacyHandler) GetPendingProducts(c *gin.Context) {
	products, err := h.store.Products(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, products)
}

// GET /admin/legacy/shippers
func (h *LegacyHandler) GetShippers(c *gin.Context) {
	shippers, err := h.store.Shippers(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, shippers)
}
