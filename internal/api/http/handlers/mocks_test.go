package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/auth"
	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/service"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

const testSecret = "handler-test-secret-with-enough-bytes"

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Signup(ctx context.Context, loginID, password string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, loginID, password, role)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, loginID, password string) (*domain.TokenPair, error) {
	args := m.Called(ctx, loginID, password)
	pair, _ := args.Get(0).(*domain.TokenPair)
	return pair, args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*domain.TokenPair)
	return pair, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, requesterID, refreshToken string) error {
	return m.Called(ctx, requesterID, refreshToken).Error(0)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) CreateProduct(ctx context.Context, ownerID string, input service.ProductCreateInput) (*domain.Product, error) {
	args := m.Called(ctx, ownerID, input)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, ownerID string, productID int64) (*domain.ProductAggregate, error) {
	args := m.Called(ctx, ownerID, productID)
	agg, _ := args.Get(0).(*domain.ProductAggregate)
	return agg, args.Error(1)
}

func (m *MockProductService) GetProductForEdit(ctx context.Context, ownerID string, productID int64) (*domain.ProductAggregate, []domain.Category, error) {
	args := m.Called(ctx, ownerID, productID)
	agg, _ := args.Get(0).(*domain.ProductAggregate)
	categories, _ := args.Get(1).([]domain.Category)
	return agg, categories, args.Error(2)
}

func (m *MockProductService) SetActive(ctx context.Context, ownerID string, productID int64, active bool) error {
	return m.Called(ctx, ownerID, productID, active).Error(0)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, ownerID string, productID int64) error {
	return m.Called(ctx, ownerID, productID).Error(0)
}

type MockVariantService struct{ mock.Mock }

func (m *MockVariantService) ListVariants(ctx context.Context, ownerID string, q service.VariantQuery) (*service.VariantPage, error) {
	args := m.Called(ctx, ownerID, q)
	page, _ := args.Get(0).(*service.VariantPage)
	return page, args.Error(1)
}

func (m *MockVariantService) ListProductVariants(ctx context.Context, ownerID string, productID int64) ([]domain.Variant, error) {
	args := m.Called(ctx, ownerID, productID)
	variants, _ := args.Get(0).([]domain.Variant)
	return variants, args.Error(1)
}

func (m *MockVariantService) UpdateStocks(ctx context.Context, ownerID string, productID int64, updates []service.StockUpdate) ([]domain.Variant, error) {
	args := m.Called(ctx, ownerID, productID, updates)
	variants, _ := args.Get(0).([]domain.Variant)
	return variants, args.Error(1)
}

func (m *MockVariantService) UpdateStock(ctx context.Context, ownerID string, productID, variantID int64, stock int) (*domain.Variant, error) {
	args := m.Called(ctx, ownerID, productID, variantID, stock)
	v, _ := args.Get(0).(*domain.Variant)
	return v, args.Error(1)
}

type stubCategories struct {
	items []domain.Category
	err   error
}

func (s stubCategories) List(context.Context) ([]domain.Category, error) {
	return s.items, s.err
}

type testApp struct {
	app    *fiber.App
	tokens *auth.TokenManager
}

// newApp builds a fiber app with the bearer middleware and an error handler
// writing the errorCode body shape.
func newApp() *testApp {
	tokens := auth.NewTokenManager(testSecret)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{
				"errorCode": de.Code,
				"message":   de.Message,
				"details":   de.Details,
			})
		},
	})
	app.Use(auth.NewAuthMiddleware(tokens, zap.NewNop()).Handle)
	return &testApp{app: app, tokens: tokens}
}

func accessToken(t *testing.T, tokens *auth.TokenManager, subject string) string {
	t.Helper()
	token, _, err := tokens.IssueAccessToken(subject, "tester", domain.RoleWholesaler, time.Hour)
	require.NoError(t, err)
	return token
}

type response struct {
	status int
	body   map[string]any
	raw    []byte
}

func call(t *testing.T, app *fiber.App, method, path, token string, payload any) response {
	t.Helper()
	var body io.Reader
	switch p := payload.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(p)
	default:
		buf, err := json.Marshal(p)
		require.NoError(t, err)
		body = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := response{status: resp.StatusCode, raw: raw}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out.body))
	}
	return out
}
