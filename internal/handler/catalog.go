package handler

import (
	"net/http"

	"github.com/osse101/Homestead_Go/internal/catalog"
	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/logger"
)

// CatalogData is the payload of the crop listing
type CatalogData struct {
	Crops []domain.CropMaster `json:"crops"`
}

// CatalogHandler serves the read-only crop catalog
type CatalogHandler struct {
	catalogSvc catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogSvc catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListCrops handles GET /api/v1/catalog/crops
func (h *CatalogHandler) ListCrops(w http.ResponseWriter, r *http.Request) {
	crops, err := h.catalogSvc.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error(LogMsgCatalogFailed, "error", err)
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, CatalogData{Crops: crops})
}
