package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domaingen/domaingen/internal/config"
	"github.com/domaingen/domaingen/internal/core"
	"github.com/domaingen/domaingen/internal/core/engine"
	apperrors "github.com/domaingen/domaingen/internal/errors"
	"github.com/domaingen/domaingen/internal/server/handlers"
)

type memoryItems struct {
	items []core.Item
}

func (m *memoryItems) ListItems(ctx context.Context) ([]core.Item, error) {
	return append([]core.Item{}, m.items...), nil
}

func (m *memoryItems) ListItemsByType(ctx context.Context, itemType core.ItemType) ([]core.Item, error) {
	out := make([]core.Item, 0)
	for _, item := range m.items {
		if item.Type == itemType {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memoryItems) SaveItem(ctx context.Context, input core.ItemInput) (*core.Item, error) {
	item := core.Item{ID: int64(len(m.items) + 1), Type: input.Type, Description: input.Description}
	m.items = append(m.items, item)
	return &item, nil
}

func (m *memoryItems) DeleteItem(ctx context.Context, id int64) (bool, error) {
	return true, nil
}

// availableNames reports only the listed names as available.
type availableNames map[string]bool

func (c availableNames) IsAvailable(ctx context.Context, fqdn string) bool {
	return c[fqdn]
}

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:        "127.0.0.1",
		Port:        0,
		CORSOrigins: []string{"http://localhost:8081"},
	}
}

func newTestServer(items *memoryItems, available availableNames) *Server {
	gen := &engine.Generator{Items: items, Checker: available, Concurrency: 1}
	api := handlers.NewAPI(items, gen)
	health := handlers.NewHealthManager("test")
	health.RegisterChecker("store", handlers.HealthCheckFunc(func(context.Context) error { return nil }))
	return New(testConfig(), api, health)
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := newTestServer(&memoryItems{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var body apperrors.HTTPErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if body.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected error code NOT_FOUND, got %s", body.Error.Code)
	}
	if body.Error.RequestID == "" {
		t.Fatal("expected request id on error response")
	}
}

func TestServerMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&memoryItems{}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/items", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServerGeneratesCombinationsFromSavedItems(t *testing.T) {
	items := &memoryItems{}
	srv := newTestServer(items, availableNames{"sunflower.com.br": true})
	h := srv.Handler()

	for _, body := range []string{
		`{"type":"prefix","description":"Sun"}`,
		`{"type":"suffix","description":"flower"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/domains", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var candidates []core.Candidate
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&candidates))
	require.Len(t, candidates, 1)
	assert.Equal(t, core.Candidate{
		Name:      "sunflower",
		Checkout:  "https://checkout.hostgator.com.br/?a=add&sld=sunflower&tld=.com.br",
		Available: true,
	}, candidates[0])
}

func TestServerGeneratesSingleNameAcrossExtensions(t *testing.T) {
	srv := newTestServer(&memoryItems{}, availableNames{"foo.net": true})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/domains/Foo", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var candidates []core.Candidate
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&candidates))
	require.Len(t, candidates, 4)

	var extensions []string
	for _, c := range candidates {
		assert.Equal(t, "foo", c.Name)
		assert.Equal(t, c.Extension == ".net", c.Available)
		extensions = append(extensions, c.Extension)
	}
	assert.Equal(t, []string{".com.br", ".com", ".net", ".org"}, extensions)
}

func TestServerHealthRoutes(t *testing.T) {
	srv := newTestServer(&memoryItems{}, nil)

	for _, path := range []string{"/health", "/health/live", "/health/ready", "/health/startup", "/version"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestServerWithoutHealthManagerOmitsHealthRoutes(t *testing.T) {
	srv := New(testConfig(), nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerAnswersCORSPreflight(t *testing.T) {
	srv := newTestServer(&memoryItems{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/items", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:8081", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerAddr(t *testing.T) {
	srv := New(config.ServerConfig{Host: "localhost", Port: 8080}, nil, nil)
	assert.Equal(t, "localhost:8080", srv.Addr())
	assert.Equal(t, 8080, srv.Port())
	assert.NoError(t, srv.Shutdown(context.Background()))
}
