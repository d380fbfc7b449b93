package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/server/http/dto"
)

// CatalogHandler serves the public flower catalog.
type CatalogHandler struct {
	facade CatalogFacade
	logger *slog.Logger
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{facade: facade, logger: logger}
}

// List handles GET /api/flowers. An unknown category matches nothing.
func (h *CatalogHandler) List(c *gin.Context) {
	response := make([]dto.FlowerResponse, 0)

	var filter *model.FlowerCategory
	if raw, ok := c.GetQuery("category"); ok && raw != "" {
		category, known := model.ParseFlowerCategory(raw)
		if !known {
			c.JSON(http.StatusOK, dto.DataResponse{Success: true, Data: response})
			return
		}
		filter = &category
	}

	flowers, err := h.facade.Flowers(c.Request.Context(), filter)
	if err != nil {
		respondInternal(c, h.logger, "list flowers", err)
		return
	}
	for _, f := range flowers {
		response = append(response, dto.NewFlowerResponse(f))
	}
	c.JSON(http.StatusOK, dto.DataResponse{Success: true, Data: response})
}
