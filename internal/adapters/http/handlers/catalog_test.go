package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/errgate-io/errgate/internal/adapters/http/middleware"
	"github.com/errgate-io/errgate/internal/catalog"
	"github.com/errgate-io/errgate/internal/translator"
)

// catalogStatusCodes mirrors the mapping shipped in configs/base.yaml.
var catalogStatusCodes = map[string]int{
	"catalog.NotFoundError/mp-jaxrs-ext/statuscode":   http.StatusNotFound,
	"catalog.ValidationError/mp-jaxrs-ext/statuscode": http.StatusBadRequest,
	"catalog.DuplicateError/mp-jaxrs-ext/statuscode":  http.StatusConflict,
}

func newCatalogEngine(t *testing.T) (*gin.Engine, *catalog.Service) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := catalog.NewService(logger)

	lookup := func(key string) (int, bool) {
		v, ok := catalogStatusCodes[key]
		return v, ok
	}

	engine := gin.New()
	engine.Use(middleware.ErrorTranslator(translator.Config{}, lookup, logger))
	NewCatalogHandler(service).RegisterCatalogRoutes(engine.Group("/api/v1"))

	return engine, service
}

func do(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func TestCatalog_CreateAndGet(t *testing.T) {
	engine, _ := newCatalogEngine(t)

	w := do(engine, http.MethodPost, "/api/v1/items", `{"name":"widget","price":250}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created catalog.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = do(engine, http.MethodGet, "/api/v1/items/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"widget"`)
}

func TestCatalog_GetMissing(t *testing.T) {
	engine, _ := newCatalogEngine(t)

	w := do(engine, http.MethodGet, "/api/v1/items/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Values("reason"))
}

func TestCatalog_CreateInvalid(t *testing.T) {
	engine, _ := newCatalogEngine(t)

	w := do(engine, http.MethodPost, "/api/v1/items", `{"price":-1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalog_CreateMalformedJSON(t *testing.T) {
	engine, _ := newCatalogEngine(t)

	w := do(engine, http.MethodPost, "/api/v1/items", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalog_CreateDuplicate(t *testing.T) {
	engine, _ := newCatalogEngine(t)

	body := `{"id":"fixed","name":"widget","price":1}`
	w := do(engine, http.MethodPost, "/api/v1/items", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(engine, http.MethodPost, "/api/v1/items", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCatalog_List(t *testing.T) {
	engine, service := newCatalogEngine(t)

	_, err := service.Create(t.Context(), catalog.Item{ID: "a", Name: "first"})
	require.NoError(t, err)
	_, err = service.Create(t.Context(), catalog.Item{ID: "b", Name: "second"})
	require.NoError(t, err)

	w := do(engine, http.MethodGet, "/api/v1/items", "")

	require.Equal(t, http.StatusOK, w.Code)

	var items []catalog.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
}

func TestCatalog_CrashRouteIsRecovered(t *testing.T) {
	engine, _ := newCatalogEngine(t)

	w := do(engine, http.MethodGet, "/api/v1/crash", "")

	// catalog.StorageError carries no mapping, so the recovered panic
	// falls through to the unmapped path with the cause's message.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, []string{"simulated store corruption"}, w.Header().Values("reason"))
}

func TestCatalog_Delete(t *testing.T) {
	engine, service := newCatalogEngine(t)

	_, err := service.Create(t.Context(), catalog.Item{ID: "a", Name: "first"})
	require.NoError(t, err)

	w := do(engine, http.MethodDelete, "/api/v1/items/a", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(engine, http.MethodDelete, "/api/v1/items/a", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
