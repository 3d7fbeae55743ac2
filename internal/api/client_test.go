package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/online-shop/shopfront/internal/adapters/memstate"
	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/domain/model"
	apperrors "github.com/online-shop/shopfront/internal/errors"
	"github.com/online-shop/shopfront/internal/ports"
)

func newTestClient(t *testing.T, handler http.Handler, creds ports.CredentialStore) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, Credentials: creds})
	require.NoError(t, err)
	return client
}

func TestNewClient_ValidatesBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "valid", baseURL: "http://localhost:8080/api"},
		{name: "trailing slash ok", baseURL: "http://localhost:8080/api/"},
		{name: "empty", baseURL: "", wantErr: true},
		{name: "whitespace", baseURL: "   ", wantErr: true},
		{name: "no scheme", baseURL: "localhost:8080", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(Config{BaseURL: tt.baseURL})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8080/api", client.baseURL)
		})
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	creds := memstate.NewStore()
	require.NoError(t, creds.Save(context.Background(), domainauth.Identity{
		Token: "tok-abc", UserID: 7, Username: "alice", Role: domainauth.RoleCustomer,
	}))

	var got http.Header
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(domainauth.LoginResult{})
	}), creds)

	_, err := client.Login(context.Background(), domainauth.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-abc", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestClient_NoTokenOmitsAuthorization(t *testing.T) {
	var got http.Header
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`[]`))
	})

	t.Run("nil store", func(t *testing.T) {
		client := newTestClient(t, handler, nil)
		_, err := client.List(context.Background(), model.ProductQuery{})
		require.NoError(t, err)
		assert.Empty(t, got.Get("Authorization"))
	})

	t.Run("empty store", func(t *testing.T) {
		client := newTestClient(t, handler, memstate.NewStore())
		_, err := client.List(context.Background(), model.ProductQuery{})
		require.NoError(t, err)
		assert.Empty(t, got.Get("Authorization"))
	})
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperrors.ErrorCode
		wantMsg  string
	}{
		{
			name:     "401 unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"error": "Invalid credentials!"}`,
			wantCode: apperrors.ErrCodeUnauthorized,
			wantMsg:  "Invalid credentials!",
		},
		{
			name:     "403 forbidden",
			status:   http.StatusForbidden,
			body:     `{"error": "Access denied"}`,
			wantCode: apperrors.ErrCodeUnauthorized,
			wantMsg:  "Access denied",
		},
		{
			name:     "404 not found",
			status:   http.StatusNotFound,
			body:     `{"error": "Cart not found"}`,
			wantCode: apperrors.ErrCodeNotFound,
			wantMsg:  "Cart not found",
		},
		{
			name:     "500 with message field",
			status:   http.StatusInternalServerError,
			body:     `{"message": "something broke"}`,
			wantCode: apperrors.ErrCodeAPI,
			wantMsg:  "something broke",
		},
		{
			name:     "500 without envelope falls back to status",
			status:   http.StatusInternalServerError,
			body:     `<html>oops</html>`,
			wantCode: apperrors.ErrCodeAPI,
			wantMsg:  "500 Internal Server Error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}), nil)

			_, err := client.Get(context.Background(), 7)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), 7)

	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}

func TestClient_CartEndpoints(t *testing.T) {
	type call struct {
		method string
		path   string
		query  string
		body   string
	}
	var last call
	cartJSON := `{"id":1,"userId":7,"cartItems":[{"id":9,"productId":42,"quantity":3}],"totalPrice":29.97,"totalItems":3}`

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		last = call{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(body)}
		if r.Method == http.MethodDelete && r.URL.Path == "/cart/7/clear" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(cartJSON))
	}), nil)
	ctx := context.Background()

	cart, err := client.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, call{method: "GET", path: "/cart/7"}, last)
	assert.Equal(t, int64(7), cart.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(42), cart.Items[0].ProductID)

	_, err = client.AddItem(ctx, 7, model.AddItemInput{ProductID: 42, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "POST", last.method)
	assert.Equal(t, "/cart/7/add-item", last.path)
	assert.JSONEq(t, `{"productId":42,"quantity":3}`, last.body)

	_, err = client.UpdateItem(ctx, 7, 9, 5)
	require.NoError(t, err)
	assert.Equal(t, call{method: "PUT", path: "/cart/7/update-item/9", query: "quantity=5"}, last)

	_, err = client.RemoveItem(ctx, 7, 9)
	require.NoError(t, err)
	assert.Equal(t, call{method: "DELETE", path: "/cart/7/remove-item/9"}, last)

	require.NoError(t, client.Clear(ctx, 7))
	assert.Equal(t, call{method: "DELETE", path: "/cart/7/clear"}, last)
}

func TestClient_AuthEndpoints(t *testing.T) {
	var gotPath, gotMethod string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		switch r.URL.Path {
		case "/auth/login":
			_, _ = w.Write([]byte(`{"message":"Login successful!","userId":7,"username":"alice","role":"CUSTOMER","token":"tok-abc"}`))
		case "/auth/register", "/auth/register-admin":
			_, _ = w.Write([]byte(`{"message":"User registered successfully!"}`))
		default:
			_, _ = w.Write([]byte(`{"id":7,"username":"alice","role":"CUSTOMER"}`))
		}
	}), nil)
	ctx := context.Background()

	result, err := client.Login(ctx, domainauth.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "/auth/login", gotPath)
	assert.Equal(t, domainauth.LoginResult{
		Message:  "Login successful!",
		Token:    "tok-abc",
		UserID:   7,
		Username: "alice",
		Role:     domainauth.RoleCustomer,
	}, result)

	require.NoError(t, client.Register(ctx, domainauth.Profile{Username: "bob"}))
	assert.Equal(t, "/auth/register", gotPath)

	require.NoError(t, client.RegisterAdmin(ctx, domainauth.Profile{Username: "root"}))
	assert.Equal(t, "/auth/register-admin", gotPath)

	account, err := client.GetProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "GET", gotMethod)
	assert.Equal(t, "/auth/profile/7", gotPath)
	assert.Equal(t, "alice", account.Username)

	_, err = client.UpdateProfile(ctx, 7, domainauth.Profile{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "PUT", gotMethod)
	assert.Equal(t, "/auth/profile/7", gotPath)
}

func TestClient_ProductList_Normalization(t *testing.T) {
	t.Run("flat array", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id":1,"name":"Mug"},{"id":2,"name":"Shirt"}]`))
		}), nil)

		page, err := client.List(context.Background(), model.ProductQuery{Page: 2, Size: 5})

		require.NoError(t, err)
		assert.Equal(t, int64(2), page.TotalElements)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, 2, page.Number)
		assert.Equal(t, 5, page.Size)
		require.Len(t, page.Content, 2)
		assert.Equal(t, "Mug", page.Content[0].Name)
	})

	t.Run("page envelope", func(t *testing.T) {
		var gotQuery string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`{"content":[{"id":1,"name":"Mug"}],"totalElements":41,"totalPages":5,"number":0,"size":10}`))
		}), nil)

		page, err := client.List(context.Background(), model.ProductQuery{Category: "kitchen", Search: "mug"})

		require.NoError(t, err)
		assert.Contains(t, gotQuery, "category=kitchen")
		assert.Contains(t, gotQuery, "search=mug")
		assert.Contains(t, gotQuery, "size=10")
		assert.Equal(t, int64(41), page.TotalElements)
		require.Len(t, page.Content, 1)
	})

	t.Run("empty envelope content is normalized", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"totalElements":0,"totalPages":0,"number":0,"size":10}`))
		}), nil)

		page, err := client.List(context.Background(), model.ProductQuery{})

		require.NoError(t, err)
		assert.NotNil(t, page.Content)
		assert.Empty(t, page.Content)
	})
}

func TestClient_OrderEndpoints(t *testing.T) {
	var gotPath, gotMethod, gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod, gotQuery = r.URL.Path, r.Method, r.URL.RawQuery
		switch {
		case r.URL.Path == "/orders/user/7":
			_, _ = w.Write([]byte(`[{"id":3,"userId":7,"status":"PENDING"}]`))
		default:
			_, _ = w.Write([]byte(`{"id":3,"userId":7,"status":"PENDING"}`))
		}
	}), nil)
	ctx := context.Background()

	order, err := client.CreateFromCart(ctx, 7, "12 Main St", "12 Main St")
	require.NoError(t, err)
	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "/orders/from-cart/7", gotPath)
	assert.Equal(t, int64(3), order.ID)

	orders, err := client.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "/orders/user/7", gotPath)
	require.Len(t, orders, 1)
	assert.Equal(t, model.OrderStatusPending, orders[0].Status)

	_, err = client.UpdateStatus(ctx, 3, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, "PUT", gotMethod)
	assert.Equal(t, "/orders/3/status", gotPath)
	assert.Contains(t, gotQuery, "status=SHIPPED")
}
