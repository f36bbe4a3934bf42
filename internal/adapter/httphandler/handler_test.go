package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ViewCatalog(
	ctx context.Context, s domain.Shopper, q catalog.Query,
) ([]catalog.CategoryView, error) {
	args := m.Called(ctx, s, q)
	return args.Get(0).([]catalog.CategoryView), args.Error(1)
}

func (m *MockService) ViewProduct(
	ctx context.Context, id int64,
) (catalog.ProductView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.ProductView), args.Error(1)
}

func (m *MockService) CreateProduct(
	ctx context.Context, token string, p domain.NewProduct,
) error {
	return m.Called(ctx, token, p).Error(0)
}

func (m *MockService) AddToCart(
	ctx context.Context, s domain.Shopper, code int64, amount int,
) error {
	return m.Called(ctx, s, code, amount).Error(0)
}

func (m *MockService) RemoveFromCart(
	ctx context.Context, s domain.Shopper, code int64,
) error {
	return m.Called(ctx, s, code).Error(0)
}

func (m *MockService) GetCart(
	ctx context.Context, s domain.Shopper,
) (domain.CartSummary, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.CartSummary), args.Error(1)
}

func (m *MockService) Checkout(ctx context.Context, s domain.Shopper) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockService) SaveCustomer(
	ctx context.Context, c domain.Customer,
) (domain.Customer, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *MockService) GetCustomer(
	ctx context.Context, id int64,
) (domain.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func newRouter(svc *MockService) http.Handler {
	r := httphandler.NewRouter()
	httphandler.RegisterCatalog(r, svc, svc)
	httphandler.RegisterCart(r, svc)
	httphandler.RegisterCustomers(r, svc)
	return r
}

func serve(
	t *testing.T, h http.Handler, method, target, body string, header http.Header,
) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		req.Header[k] = vs
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var authHeader = http.Header{
	"X-Customer-Id": {"5"},
	"Authorization": {"Bearer tkn"},
}

var shopper = domain.Shopper{CustomerID: "5", Token: "tkn"}

func TestGetCatalog(t *testing.T) {
	svc := new(MockService)
	svc.On("ViewCatalog", mock.Anything, shopper, catalog.Query{
		Filter: "café",
		Sort:   domain.SortBiggestPrice,
	}).Return([]catalog.CategoryView{{
		ID:   "1",
		Name: "Bebidas",
		Products: []catalog.ProductView{{
			ID: 1, Name: "Café", Price: 19.9, PriceLabel: "R$: 19,90",
			Rating: &catalog.RatingBadge{Average: 9, Label: "9,00", Stars: 5},
		}},
	}}, nil)

	rec := serve(t, newRouter(svc), http.MethodGet,
		"/v1/catalog?filter=caf%C3%A9&sort=biggestPrice", "", authHeader)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []httphandler.Category
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Bebidas", got[0].Name)
	require.Len(t, got[0].Products, 1)
	assert.Equal(t, "R$: 19,90", got[0].Products[0].PriceLabel)
	require.NotNil(t, got[0].Products[0].Rating)
	assert.Equal(t, 5, got[0].Products[0].Rating.Stars)
	svc.AssertExpectations(t)
}

func TestGetCatalog_UnknownSortIgnored(t *testing.T) {
	svc := new(MockService)
	svc.On("ViewCatalog", mock.Anything, domain.Shopper{}, catalog.Query{}).
		Return([]catalog.CategoryView{}, nil)

	rec := serve(t, newRouter(svc), http.MethodGet, "/v1/catalog?sort=random", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Backend", domain.ErrBackend, http.StatusBadGateway},
		{"NotFound", domain.ErrNotFound, http.StatusNotFound},
		{"Invalid", domain.ErrInvalidForm, http.StatusBadRequest},
		{"Unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("ViewProduct", mock.Anything, int64(3)).
				Return(catalog.ProductView{}, tt.err)

			rec := serve(t, newRouter(svc), http.MethodGet, "/v1/products/3", "", nil)
			assert.Equal(t, tt.want, rec.Code)

			var body httphandler.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestGetProduct_BadID(t *testing.T) {
	rec := serve(t, newRouter(new(MockService)), http.MethodGet, "/v1/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostProduct(t *testing.T) {
	svc := new(MockService)
	svc.On("CreateProduct", mock.Anything, "tkn", domain.NewProduct{
		Name: "Bolo", Price: 20, Description: "chocolate", InventoryAmount: 2,
	}).Return(nil)

	rec := serve(t, newRouter(svc), http.MethodPost, "/v1/products",
		`{"name":"Bolo","price":20,"description":"chocolate","inventory_amount":2}`,
		authHeader)
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestAllowJSON(t *testing.T) {
	svc := new(MockService)
	req := httptest.NewRequest(http.MethodPost, "/v1/products", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestCart(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetCart", mock.Anything, shopper).Return(domain.CartSummary{
			Lines: []domain.CartLine{{
				Code: 1, Name: "Café", Amount: 2,
				PriceLabel: "R$: 10,50", AmountLabel: "2 x R$: 10,50",
				LineTotalLabel: "R$: 21,00", LineTotalAmount: 21,
			}},
			Items: 1, Total: 21, TotalLabel: "R$: 21,00",
		}, nil)

		rec := serve(t, newRouter(svc), http.MethodGet, "/v1/cart", "", authHeader)
		require.Equal(t, http.StatusOK, rec.Code)

		var got httphandler.Cart
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "R$: 21,00", got.TotalLabel)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, "2 x R$: 10,50", got.Lines[0].AmountLabel)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetCart", mock.Anything, domain.Shopper{}).
			Return(domain.CartSummary{}, domain.ErrUnauthorized)

		rec := serve(t, newRouter(svc), http.MethodGet, "/v1/cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Put", func(t *testing.T) {
		svc := new(MockService)
		svc.On("AddToCart", mock.Anything, shopper, int64(7), 3).Return(nil)

		rec := serve(t, newRouter(svc), http.MethodPut, "/v1/cart/7", `{"amount":3}`, authHeader)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("PutInvalidAmount", func(t *testing.T) {
		svc := new(MockService)
		svc.On("AddToCart", mock.Anything, shopper, int64(7), 0).
			Return(domain.ErrInvalidAmount)

		rec := serve(t, newRouter(svc), http.MethodPut, "/v1/cart/7", `{"amount":0}`, authHeader)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		svc := new(MockService)
		svc.On("RemoveFromCart", mock.Anything, shopper, int64(7)).Return(nil)

		rec := serve(t, newRouter(svc), http.MethodDelete, "/v1/cart/7", "", authHeader)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("CheckoutEmpty", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Checkout", mock.Anything, shopper).Return(domain.ErrEmptyCart)

		rec := serve(t, newRouter(svc), http.MethodPost, "/v1/checkout", "", authHeader)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("CheckoutStorageDown", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Checkout", mock.Anything, shopper).Return(domain.ErrStorage)

		rec := serve(t, newRouter(svc), http.MethodPost, "/v1/checkout", "", authHeader)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestCustomers(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		svc := new(MockService)
		svc.On("SaveCustomer", mock.Anything, domain.Customer{
			Name: "Ana", Email: "ana@example.com", Password: "secret",
		}).Return(domain.Customer{
			ID: 9, Name: "Ana", Email: "ana@example.com", Password: "secret",
		}, nil)

		rec := serve(t, newRouter(svc), http.MethodPost, "/v1/customers",
			`{"id":4,"name":"Ana","email":"ana@example.com","password":"secret"}`, nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		var got httphandler.Customer
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, int64(9), got.ID)
		assert.Empty(t, got.Password)
	})

	t.Run("Update", func(t *testing.T) {
		svc := new(MockService)
		svc.On("SaveCustomer", mock.Anything, domain.Customer{ID: 9, Name: "Ana"}).
			Return(domain.Customer{ID: 9, Name: "Ana"}, nil)

		rec := serve(t, newRouter(svc), http.MethodPut, "/v1/customers/9", `{"name":"Ana"}`, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("UnknownField", func(t *testing.T) {
		rec := serve(t, newRouter(new(MockService)), http.MethodPost, "/v1/customers",
			`{"nickname":"ana"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Get", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetCustomer", mock.Anything, int64(9)).
			Return(domain.Customer{ID: 9, Name: "Ana"}, nil)

		rec := serve(t, newRouter(svc), http.MethodGet, "/v1/customers/9", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
