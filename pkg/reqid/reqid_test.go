package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/catalog/pkg/reqid"
)

func capture(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(reqid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestGeneratesID(t *testing.T) {
	id, rec := capture(t, "")
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Header().Get(reqid.Header))
}

func TestReusesUpstreamID(t *testing.T) {
	id, rec := capture(t, "gateway-42")
	assert.Equal(t, "gateway-42", id)
	assert.Equal(t, "gateway-42", rec.Header().Get(reqid.Header))
}

func TestRejectsOversizedID(t *testing.T) {
	id, _ := capture(t, strings.Repeat("x", 500))
	assert.Len(t, id, 36)
}
