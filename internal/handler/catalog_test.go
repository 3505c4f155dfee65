package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Homestead_Go/internal/domain"
)

func TestCatalogHandler_ListCrops(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockCatalogService{}
		svc.On("List", mock.Anything).Return([]domain.CropMaster{
			{ID: "t", Name: "Turnip", GrowthSeconds: 10, BuyPrice: 10, SellPrice: 20, DisplayToken: "🥔"},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/crops", nil)
		w := httptest.NewRecorder()
		NewCatalogHandler(svc).ListCrops(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Turnip"`)
		assert.Contains(t, w.Body.String(), `"growthSeconds":10`)
		svc.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := &MockCatalogService{}
		svc.On("List", mock.Anything).Return(nil, domain.ErrDatabaseError)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/crops", nil)
		w := httptest.NewRecorder()
		NewCatalogHandler(svc).ListCrops(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, domain.KindInternal, decodeError(t, w).Kind)
	})
}
