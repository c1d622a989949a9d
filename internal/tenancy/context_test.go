package tenancy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithOrgIDAndOrgIDFromContext(t *testing.T) {
	ctx := WithOrgID(context.Background(), "org-123")

	got, ok := OrgIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "org-123", got)
}

func TestOrgIDFromContext_EmptyOrMissing(t *testing.T) {
	_, ok := OrgIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = OrgIDFromContext(context.WithValue(context.Background(), orgKey, 42))
	assert.False(t, ok, "non-string org id")

	_, ok = OrgIDFromContext(WithOrgID(context.Background(), ""))
	assert.False(t, ok, "empty org id")
}

func TestValidOrgID(t *testing.T) {
	assert.True(t, ValidOrgID("org_123-abc"))
	assert.False(t, ValidOrgID(""))
	assert.False(t, ValidOrgID("org:123"))
	assert.False(t, ValidOrgID("org 123"))
}

func TestOrgScope(t *testing.T) {
	var seen string
	r := chi.NewRouter()
	r.Route("/api/orgs/{orgID}", func(r chi.Router) {
		r.Use(OrgScope)
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			seen, _ = OrgIDFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orgs/org-9/ping", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "org-9", seen)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orgs/bad:id/ping", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
