package handlers

import (
	"context"
	"name-locator-service/internal/api/dto"
	"name-locator-service/internal/platform/logger"
	"name-locator-service/internal/platform/obs"
	"name-locator-service/internal/session"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// SessionHandler exposes the session state machine over HTTP.
type SessionHandler struct {
	Session   *session.Session
	PublicURL string
}

// State serves GET (read) and DELETE (clear) on the session.
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodDelete:
		h.Session.Clear()
		logger.Log.Info("session cleared")
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodDelete}, ", "))
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, toSessionResponse(h.Session.Snapshot()))
}

// Submit appends the location of the posted name. Blank names are accepted
// without effect, reported as accepted=false.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SubmitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	loc, accepted := h.Session.Submit(req.Name)
	if accepted {
		logger.Log.Info("location derived",
			zap.String("digest", loc.DigestHex),
			zap.Float64("lat", loc.Latitude),
			zap.Float64("lon", loc.Longitude),
		)
	}

	writeJSON(w, r, http.StatusOK, dto.SubmitResponse{
		Accepted: accepted,
		Session:  toSessionResponse(h.Session.Snapshot()),
	})
}

// Share builds a shareable reference for the active location.
func (h *SessionHandler) Share(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	res, err := h.share(r.Context())
	if err != nil {
		writeSessionError(w, r, "share", err)
		return
	}

	out := dto.ShareResponse{
		Reference: res.Reference,
		Native:    res.Native,
		Links:     make([]dto.ShareLinkResponse, 0, len(res.Links)),
	}
	for _, l := range res.Links {
		out.Links = append(out.Links, dto.ShareLinkResponse{Service: l.Service, URL: l.URL})
	}

	writeJSON(w, r, http.StatusOK, out)
}

func (h *SessionHandler) share(ctx context.Context) (_ session.ShareResult, err error) {
	defer obs.Time(ctx, "session.share")(&err)

	return h.Session.ShareActive(h.PublicURL)
}

// Copy copies the active digest to the attached clipboard.
func (h *SessionHandler) Copy(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	res, err := h.Session.CopyActiveDigest()
	if err != nil {
		writeSessionError(w, r, "copy", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CopyResponse{Copied: res.Copied, Digest: res.Digest})
}

// Export asks the attached globes to download the current frame.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	filename, err := h.Session.ExportFrame()
	if err != nil {
		writeSessionError(w, r, "export", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ExportResponse{Filename: filename})
}

// Load restores a location from a shareable reference.
func (h *SessionHandler) Load(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.LoadRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	loaded, err := h.load(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid reference")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LoadResponse{
		Loaded:  loaded,
		Session: toSessionResponse(h.Session.Snapshot()),
	})
}

func (h *SessionHandler) load(ctx context.Context, ref string) (_ bool, err error) {
	defer obs.Time(ctx, "session.load")(&err)

	return h.Session.LoadReference(ref)
}
