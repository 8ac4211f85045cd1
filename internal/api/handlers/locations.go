package handlers

import (
	"name-locator-service/internal/domain"
	"net/http"
)

// Locate derives the location of ?name= without touching the session.
// Any string is accepted, including the empty one; only a missing field is
// rejected.
func Locate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	values := r.URL.Query()
	if _, ok := values["name"]; !ok {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	writeJSON(w, r, http.StatusOK, toLocationResponse(domain.Derive(values.Get("name"))))
}
