package backend_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/backend"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := backend.NewClient(srv.URL, backend.TimeoutOpt(time.Second))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, v string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, v)
}

func TestNewClient(t *testing.T) {
	_, err := backend.NewClient("not a url")
	assert.Error(t, err)

	_, err = backend.NewClient("http://localhost:8080", backend.TimeoutOpt(0))
	assert.Error(t, err)

	_, err = backend.NewClient("http://localhost:8080", backend.HTTPClientOpt(nil))
	assert.Error(t, err)
}

func TestClient_FetchCatalog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		writeJSON(w, `{
			"data": {
				"categoriesObj": {
					"1": [{"id": 10, "name": "Café", "price": 12.5, "category": 1,
						"category_obj": [{"name": "Bebidas"}],
						"comments": [{"rating": 4, "text": "bom"}]}],
					"2": [{"code": 20, "name": "Pão", "price": 3}]
				},
				"categoriesDictionary": {"1": "Bebidas", "2": "Padaria"}
			},
			"error": null
		}`)
	})

	got, err := c.FetchCatalog(t.Context())
	require.NoError(t, err)

	require.Len(t, got.Groups["1"], 1)
	coffee := got.Groups["1"][0]
	assert.Equal(t, int64(10), coffee.ID)
	assert.Equal(t, "1", coffee.CategoryID)
	assert.Equal(t, "Bebidas", coffee.CategoryName)
	assert.Equal(t, []domain.Comment{{Rating: 4, Text: "bom"}}, coffee.Comments)

	require.Len(t, got.Groups["2"], 1)
	bread := got.Groups["2"][0]
	assert.Equal(t, int64(20), bread.ID)
	assert.Equal(t, "2", bread.CategoryID)

	assert.Equal(t, domain.CategoryNames{"1": "Bebidas", "2": "Padaria"}, got.Names)
}

func TestClient_EnvelopeError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"ErrorString", http.StatusOK, `{"data": null, "error": "boom"}`, domain.ErrBackend},
		{"ErrorTrue", http.StatusOK, `{"data": {}, "error": true}`, domain.ErrBackend},
		{"ServerError", http.StatusInternalServerError, `{}`, domain.ErrBackend},
		{"NotFound", http.StatusNotFound, ``, domain.ErrNotFound},
		{"Malformed", http.StatusOK, `{"data":`, domain.ErrBackend},
		{"NoData", http.StatusOK, `{"data": null, "error": false}`, domain.ErrBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.FetchCatalog(t.Context())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_FetchProduct(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/getProducts/7", r.URL.Path)
			writeJSON(w, `{"data": [{"id": 7, "name": "Chá", "price": 4.2, "category": "3"}]}`)
		})
		p, err := c.FetchProduct(t.Context(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), p.ID)
		assert.Equal(t, "Chá", p.Name)
		assert.Equal(t, "3", p.CategoryID)
	})

	t.Run("Object", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, `{"data": {"id": 7, "name": "Chá"}}`)
		})
		p, err := c.FetchProduct(t.Context(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Chá", p.Name)
	})

	t.Run("EmptyList", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, `{"data": []}`)
		})
		_, err := c.FetchProduct(t.Context(), 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestClient_FetchProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `/getProducts/{"productList":["1","2"]}`, r.URL.Path)
		writeJSON(w, `{"data": [{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]}`)
	})

	got, err := c.FetchProducts(t.Context(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)

	empty, err := c.FetchProducts(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClient_SubmitOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/saveOrder", r.URL.Path)
		assert.Equal(t, `"secret"`, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"customerId": float64(5),
			"products": []any{
				map[string]any{"code": float64(1), "amount": float64(2)},
			},
		}, body)

		writeJSON(w, `{"data": "ok", "error": null}`)
	})

	err := c.SubmitOrder(t.Context(), "secret", domain.Order{
		CustomerID: 5,
		Products:   []domain.CartEntry{{Code: 1, Amount: 2}},
	})
	require.NoError(t, err)
}

func TestClient_SubmitOrderTokenIsJSONString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `"a\"b<c"`, r.Header.Get("Authorization"))
		writeJSON(w, `{"data": "ok", "error": null}`)
	})

	err := c.SubmitOrder(t.Context(), `a"b<c`, domain.Order{
		CustomerID: 5,
		Products:   []domain.CartEntry{{Code: 1, Amount: 1}},
	})
	require.NoError(t, err)
}

func TestClient_Customers(t *testing.T) {
	cust := domain.Customer{Name: "Ana", Email: "ana@example.com"}

	t.Run("Create", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/saveCustomer", r.URL.Path)
			writeJSON(w, `{"data": {"id": 9, "name": "Ana", "email": "ana@example.com"}}`)
		})
		saved, err := c.CreateCustomer(t.Context(), cust)
		require.NoError(t, err)
		assert.Equal(t, int64(9), saved.ID)
	})

	t.Run("UpdateWithoutEcho", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/updateCustomer/9", r.URL.Path)
			writeJSON(w, `{"data": null, "error": null}`)
		})
		in := cust
		in.ID = 9
		saved, err := c.UpdateCustomer(t.Context(), in)
		require.NoError(t, err)
		assert.Equal(t, in, saved)
	})

	t.Run("Fetch", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/getCustomers/9", r.URL.Path)
			writeJSON(w, `{"data": [{"id": 9, "name": "Ana", "cpf": 123}]}`)
		})
		got, err := c.FetchCustomer(t.Context(), 9)
		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ID)
		assert.Equal(t, int64(123), got.CPF)
	})
}

func TestClient_PublishProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		writeJSON(w, `{"data": {"id": 1}}`)
	})

	err := c.PublishProduct(t.Context(), "tkn", domain.NewProduct{
		Name: "Bolo", Price: 20, Description: "chocolate", InventoryAmount: 3,
	})
	require.NoError(t, err)
}
