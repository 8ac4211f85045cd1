package api

import (
	"name-locator-service/internal/api/handlers"
	"name-locator-service/internal/session"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// globe serves the render collaborator socket; it may be nil when no globe
// bridge is attached.
func NewRouter(sess *session.Session, globe http.Handler, publicURL string) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &handlers.SessionHandler{
		Session:   sess,
		PublicURL: publicURL,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/locations", handlers.Locate)
	mux.HandleFunc("/session", sessionHandler.State)
	mux.HandleFunc("/session/submit", sessionHandler.Submit)
	mux.HandleFunc("/session/share", sessionHandler.Share)
	mux.HandleFunc("/session/copy", sessionHandler.Copy)
	mux.HandleFunc("/session/export", sessionHandler.Export)
	mux.HandleFunc("/session/load", sessionHandler.Load)
	if globe != nil {
		mux.Handle("/globe", globe)
	}

	return loggingMiddleware(mux)
}
