package router

import (
	"net/http"
	"strings"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/tenancy"
)

const orgHeader = "X-Org-Id"

// optionalOrgHeader lets the unscoped template routes opt into profile
// defaults by sending X-Org-Id. A malformed header is rejected.
func optionalOrgHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID := strings.TrimSpace(r.Header.Get(orgHeader))
		if orgID == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !tenancy.ValidOrgID(orgID) {
			http.Error(w, "invalid X-Org-Id", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(tenancy.WithOrgID(r.Context(), orgID)))
	})
}
