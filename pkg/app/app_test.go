package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/catalog/pkg/app"
	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

func build(t *testing.T) http.Handler {
	t.Helper()
	a := app.New().Workers(2).Routes(func(r *router.Router) {
		r.Get("/whoami", "whoami", func(w http.ResponseWriter, req *http.Request) {
			id, _ := auth.ActorFromCtx(req.Context())
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte{byte('0' + id)})
		})
	})
	h, pool := a.Handler()
	t.Cleanup(pool.Shutdown)
	return h
}

func TestHandlerStack(t *testing.T) {
	h := build(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer 4")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "4", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	build(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":404,"message":"Not found"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	build(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteTable(t *testing.T) {
	a := app.New().Routes(func(r *router.Router) {
		r.Get("/products", "products.index", func(http.ResponseWriter, *http.Request) {})
	})
	assert.Equal(t, []router.RouteInfo{{Method: "GET", Path: "/products", Name: "products.index"}}, a.RouteTable())
}
