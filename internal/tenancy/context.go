// Package tenancy carries the organization id of a request.
package tenancy

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

type ctxKey string

const orgKey ctxKey = "nemo.org_id"

var orgIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// WithOrgID stores the org id in context.
func WithOrgID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, orgKey, orgID)
}

// OrgIDFromContext extracts the org id if present.
func OrgIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(orgKey)
	if val == nil {
		return "", false
	}
	orgID, ok := val.(string)
	return orgID, ok && orgID != ""
}

// ValidOrgID reports whether id is usable as an org id and storage key part.
func ValidOrgID(id string) bool {
	return orgIDPattern.MatchString(id)
}

// OrgScope reads the {orgID} route parameter, rejects malformed ids and
// stores the id in the request context.
func OrgScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID := strings.TrimSpace(chi.URLParam(r, "orgID"))
		if !ValidOrgID(orgID) {
			http.Error(w, `{"error": "invalid org_id"}`, http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithOrgID(r.Context(), orgID)))
	})
}
