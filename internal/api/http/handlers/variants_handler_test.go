package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/repository"
	"github.com/wholesale-hub/wholesale-service/internal/service"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

func newVariantsApp(svc *MockVariantService) *testApp {
	a := newApp()
	h := NewVariantsHandler(svc)
	a.app.Get("/products/variants", h.List)
	a.app.Get("/products/:productId/variants", h.ListForProduct)
	a.app.Patch("/products/:productId/variants", h.UpdateStocks)
	a.app.Patch("/products/:productId/variants/:variantId", h.UpdateStock)
	return a
}

func TestVariantsHandler_ListParsesQuery(t *testing.T) {
	svc := new(MockVariantService)
	a := newVariantsApp(svc)
	active := true
	svc.On("ListVariants", mock.Anything, "owner-1", service.VariantQuery{
		CategoryIDs: []int{1, 2},
		Active:      &active,
		Keyword:     "tee",
		SortBy:      repository.VariantSortProductName,
		Ascending:   true,
		Page:        1,
		Size:        10,
	}).Return(&service.VariantPage{
		Items:         []domain.VariantListing{{Variant: domain.Variant{ID: 3, ProductID: 5}, ProductName: "Tee", CategoryName: "Tops"}},
		Page:          1,
		Size:          10,
		TotalElements: 11,
		TotalPages:    2,
	}, nil)

	resp := call(t, a.app, http.MethodGet,
		"/products/variants?categoryIds=1,2&isActive=true&keyword=tee&page=1&size=10&sort=productName,asc",
		accessToken(t, a.tokens, "owner-1"), nil)

	require.Equal(t, http.StatusOK, resp.status, string(resp.raw))
	assert.EqualValues(t, 11, resp.body["totalElements"])
	assert.EqualValues(t, 2, resp.body["totalPages"])
	content := resp.body["content"].([]any)
	require.Len(t, content, 1)
	assert.Equal(t, "Tee", content[0].(map[string]any)["productName"])
	svc.AssertExpectations(t)
}

func TestVariantsHandler_ListDefaults(t *testing.T) {
	svc := new(MockVariantService)
	a := newVariantsApp(svc)
	svc.On("ListVariants", mock.Anything, "owner-1", service.VariantQuery{
		SortBy: repository.VariantSortCreatedAt,
		Size:   20,
	}).Return(&service.VariantPage{Size: 20}, nil)

	resp := call(t, a.app, http.MethodGet, "/products/variants", accessToken(t, a.tokens, "owner-1"), nil)

	assert.Equal(t, http.StatusOK, resp.status)
	svc.AssertExpectations(t)
}

func TestVariantsHandler_ListRejectsBadQuery(t *testing.T) {
	svc := new(MockVariantService)
	a := newVariantsApp(svc)
	token := accessToken(t, a.tokens, "owner-1")

	for _, q := range []string{"sort=price,asc", "categoryIds=x", "isActive=maybe", "page=-1"} {
		resp := call(t, a.app, http.MethodGet, "/products/variants?"+q, token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.status, q)
	}
	svc.AssertNotCalled(t, "ListVariants", mock.Anything, mock.Anything, mock.Anything)
}

func TestVariantsHandler_UpdateStocks(t *testing.T) {
	svc := new(MockVariantService)
	a := newVariantsApp(svc)
	token := accessToken(t, a.tokens, "owner-1")
	svc.On("UpdateStocks", mock.Anything, "owner-1", int64(5), []service.StockUpdate{{VariantID: 11, Stock: 4}}).
		Return([]domain.Variant{{ID: 11, ProductID: 5, Size: "M", Color: "Black", Stock: 4}}, nil)
	svc.On("UpdateStocks", mock.Anything, "owner-1", int64(5), []service.StockUpdate{}).
		Return(nil, apperrors.ErrNoVariants())

	resp := call(t, a.app, http.MethodPatch, "/products/5/variants", token, map[string]any{
		"prodStocks": []map[string]any{{"id": 11, "stock": 4}},
	})
	require.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, resp.body["prodVariants"], 1)

	resp = call(t, a.app, http.MethodPatch, "/products/5/variants", token, map[string]any{"prodStocks": []any{}})
	assert.Equal(t, apperrors.CodeNoVariants, resp.body["errorCode"])

	resp = call(t, a.app, http.MethodPatch, "/products/5/variants", token, map[string]any{
		"prodStocks": []map[string]any{{"id": 11, "stock": -1}},
	})
	assert.Equal(t, apperrors.CodeValidationFailed, resp.body["errorCode"])
}

func TestVariantsHandler_UpdateStock(t *testing.T) {
	svc := new(MockVariantService)
	a := newVariantsApp(svc)
	token := accessToken(t, a.tokens, "owner-1")
	svc.On("UpdateStock", mock.Anything, "owner-1", int64(5), int64(11), 9).
		Return(&domain.Variant{ID: 11, ProductID: 5, Size: "M", Color: "Black", Stock: 9}, nil)
	svc.On("UpdateStock", mock.Anything, "owner-1", int64(5), int64(99), 9).
		Return(nil, apperrors.ErrProductVariantMismatch())

	resp := call(t, a.app, http.MethodPatch, "/products/5/variants/11", token, map[string]any{"stock": 9})
	require.Equal(t, http.StatusOK, resp.status)
	variant := resp.body["prodVariant"].(map[string]any)
	assert.EqualValues(t, 9, variant["stock"])

	resp = call(t, a.app, http.MethodPatch, "/products/5/variants/99", token, map[string]any{"stock": 9})
	assert.Equal(t, http.StatusForbidden, resp.status)
	assert.Equal(t, apperrors.CodeProductVariantMismatch, resp.body["errorCode"])
}

func TestVariantsHandler_ListForProduct(t *testing.T) {
	svc := new(MockVariantService)
	a := newVariantsApp(svc)
	svc.On("ListProductVariants", mock.Anything, "owner-1", int64(5)).
		Return([]domain.Variant{{ID: 11}, {ID: 12}}, nil)

	resp := call(t, a.app, http.MethodGet, "/products/5/variants", accessToken(t, a.tokens, "owner-1"), nil)

	require.Equal(t, http.StatusOK, resp.status)
	assert.EqualValues(t, 5, resp.body["productId"])
	assert.Len(t, resp.body["prodVariants"], 2)
}
