package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/giftstore/pkg/catalog"
	"github.com/example/giftstore/pkg/config"
	"github.com/example/giftstore/pkg/orders"
	"github.com/example/giftstore/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(state repository.State) *Server {
	cfg := &config.Config{}
	cfg.Server.Name = "giftstore"
	cfg.Server.Port = 8000
	if state != repository.StateUnconfigured {
		cfg.Storage.URI = "mongodb://localhost:27017"
		cfg.Storage.Database = "giftstore"
	}

	logger := zap.NewNop()
	store := repository.NewMemoryStore(state)
	srv := NewServer(cfg, logger, store,
		catalog.NewService(store, nil, logger),
		orders.NewService(store, logger))
	srv.SetupRoutes()
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRoot(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateUnconfigured), http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "E-Gifts API running", decodeBody(t, rec)["message"])
}

func TestDiagnostics(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		rec := doRequest(t, newTestServer(repository.StateUnconfigured), http.MethodGet, "/test", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "running", body["backend"])
		assert.Equal(t, "unconfigured", body["storage"])
		assert.Equal(t, "not set", body["database_url"])
	})

	t.Run("connected", func(t *testing.T) {
		rec := doRequest(t, newTestServer(repository.StateConnected), http.MethodGet, "/test", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "connected", body["storage"])
		assert.Equal(t, "memory", body["database_name"])
		assert.Equal(t, "set", body["database_url"])
	})

	t.Run("errored", func(t *testing.T) {
		rec := doRequest(t, newTestServer(repository.StateErrored), http.MethodGet, "/test", nil)

		require.Equal(t, http.StatusOK, rec.Code, "diagnostics never fail")
		body := decodeBody(t, rec)
		assert.Equal(t, "error", body["storage"])
		assert.Contains(t, body["error"], "simulated")
	})
}

func TestListGiftsFallback(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateUnconfigured), http.MethodGet, "/api/gifts", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var gifts []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gifts))
	require.Len(t, gifts, 2)
	assert.Equal(t, "love-notes-daily", gifts[0]["slug"])
}

func TestListGiftsBrokenStore(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateErrored), http.MethodGet, "/api/gifts", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListTestimonialsFallback(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateUnconfigured), http.MethodGet, "/api/testimonials", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var testimonials []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &testimonials))
	require.Len(t, testimonials, 2)
}

func orderBody(price float64, quantity int, total float64) []byte {
	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"gift_slug": "love-notes-daily", "title": "Love Notes", "price": price, "quantity": quantity},
		},
		"customer": map[string]interface{}{"name": "Анна", "email": "anna@example.com"},
		"total":    total,
	}
	data, _ := json.Marshal(payload)
	return data
}

func TestSubmitOrderDemo(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateUnconfigured), http.MethodPost, "/api/orders", orderBody(14.99, 1, 14.99))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "accepted", body["status"])
	assert.Equal(t, "demo", body["order_id"])
	assert.NotEmpty(t, body["message"])
}

func TestSubmitOrderPersisted(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateConnected), http.MethodPost, "/api/orders", orderBody(14.99, 1, 14.99))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "accepted", body["status"])
	assert.NotEqual(t, "demo", body["order_id"])
}

func TestSubmitOrderTotalMismatch(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateUnconfigured), http.MethodPost, "/api/orders", orderBody(14.99, 2, 14.99))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Total mismatch", decodeBody(t, rec)["detail"])
}

func TestSubmitOrderValidationDetail(t *testing.T) {
	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"gift_slug": "love-notes-daily", "title": "Love Notes", "price": 14.99, "quantity": 1},
		},
		"customer": map[string]interface{}{"name": "Анна", "email": "nope"},
		"total":    14.99,
	}
	data, _ := json.Marshal(payload)

	rec := doRequest(t, newTestServer(repository.StateUnconfigured), http.MethodPost, "/api/orders", data)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "validation failed", body["detail"])

	fields, ok := body["fields"].([]interface{})
	require.True(t, ok)
	require.Len(t, fields, 1)
	field := fields[0].(map[string]interface{})
	assert.Equal(t, "customer.email", field["field"])
}

func TestSubmitOrderMalformedJSON(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateUnconfigured), http.MethodPost, "/api/orders", []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitOrderBrokenStore(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateErrored), http.MethodPost, "/api/orders", orderBody(14.99, 1, 14.99))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	rec := doRequest(t, newTestServer(repository.StateUnconfigured), http.MethodOptions, "/api/orders", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
