package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wholesale-hub/wholesale-service/internal/api/dto"
	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/service"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

func validProduct() dto.ProductCreateRequest {
	return dto.ProductCreateRequest{
		ProdValue: dto.ProdValue{
			ProductName: "Linen shirt",
			Category:    &dto.CategoryDTO{ID: 1},
			Images:      []dto.ImageDTO{{ImgURL: "https://cdn/1.png"}},
			DetailBlocks: []dto.DetailBlockDTO{
				{BlockType: "TEXT", Content: "hello"},
			},
		},
		Sizes:  "S, M",
		Colors: "",
	}
}

func details(t *testing.T, err error) map[string]any {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidationFailed, de.Code)
	return de.Details
}

func TestStruct_ValidProduct(t *testing.T) {
	assert.NoError(t, Struct(validProduct()))
}

func TestStruct_RejectsForbiddenSeparators(t *testing.T) {
	for _, raw := range []string{"S;M", "S|M", "S/M", `S\M`, "S\tM"} {
		req := validProduct()
		req.Sizes = raw

		d := details(t, Struct(req))
		assert.Contains(t, d, "sizes", raw)
	}
}

func TestStruct_SeparatorRuleMatchesOptionParser(t *testing.T) {
	for _, sep := range domain.ForbiddenOptionSeparators {
		raw := "S" + string(sep) + "M"
		req := validProduct()
		req.Colors = raw

		assert.Error(t, Struct(req), "%q", raw)
		_, err := service.ParseOptions("colors", raw)
		assert.Error(t, err, "%q", raw)
	}

	req := validProduct()
	req.Colors = "Black, White"
	require.NoError(t, Struct(req))
	values, err := service.ParseOptions("colors", req.Colors)
	require.NoError(t, err)
	assert.Equal(t, []string{"Black", "White"}, values)
}

func TestStruct_ReportsNestedFieldPaths(t *testing.T) {
	zero := 0
	req := validProduct()
	req.ProdValue.ProductName = ""
	req.ProdValue.Category = nil
	req.ProdValue.Price = &zero
	req.ProdValue.DetailBlocks[0].BlockType = "AUDIO"

	d := details(t, Struct(req))

	assert.Contains(t, d, "prodValue.productName")
	assert.Contains(t, d, "prodValue.category")
	assert.Contains(t, d, "prodValue.price")
	assert.Contains(t, d, "prodValue.detailBlocks[0].blockType")
}

func TestStruct_NilPriceIsAllowed(t *testing.T) {
	req := validProduct()
	req.ProdValue.Price = nil
	assert.NoError(t, Struct(req))
}

func TestStruct_StockMustBeNonNegative(t *testing.T) {
	negative := -1
	d := details(t, Struct(dto.UpdateStockRequest{Stock: &negative}))
	assert.Contains(t, d, "stock")

	d = details(t, Struct(dto.UpdateStockRequest{}))
	assert.Equal(t, "stock is required", d["stock"])
}

func TestStruct_SignupRole(t *testing.T) {
	d := details(t, Struct(dto.SignupRequest{LoginID: "tester", Password: "test1234", Role: "ADMIN"}))
	assert.Contains(t, d, "role")

	assert.NoError(t, Struct(dto.SignupRequest{LoginID: "tester", Password: "test1234", Role: "AGENT"}))
}
