package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GenerateDomains serves POST /api/domains: every prefix/suffix combination
// checked under .com.br.
func (a *API) GenerateDomains(w http.ResponseWriter, r *http.Request) {
	candidates, err := a.Domains.GenerateAll(r.Context())
	if err != nil {
		a.fail(w, r, opGenerateDomains, err, "failed to generate domains")
		return
	}

	a.succeed(w, opGenerateDomains, http.StatusOK, candidates)
}

// GenerateDomain serves POST /api/domains/{name}: one name across every
// supported extension.
func (a *API) GenerateDomain(w http.ResponseWriter, r *http.Request) {
	candidates, err := a.Domains.GenerateForName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		a.fail(w, r, opGenerateDomain, err, "failed to generate domain")
		return
	}

	a.succeed(w, opGenerateDomain, http.StatusOK, candidates)
}
