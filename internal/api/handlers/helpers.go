package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"name-locator-service/internal/api/dto"
	"name-locator-service/internal/domain"
	"name-locator-service/internal/platform/logger"
	"name-locator-service/internal/services"
	"name-locator-service/internal/session"
	"net/http"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// allowMethod rejects the request with 405 unless it uses method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeBody decodes exactly one JSON object from the request body.
// An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// writeSessionError maps session errors onto HTTP statuses.
func writeSessionError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, session.ErrNoActiveRecord) {
		writeError(w, r, http.StatusConflict, "no active location")
		return
	}
	logger.Log.Error(op+" failed", zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func toLocationResponse(l domain.DerivedLocation) dto.LocationResponse {
	return dto.LocationResponse{
		SourceText:  l.SourceText,
		Digest:      l.DigestHex,
		LatFieldHex: l.LatFieldHex,
		LonFieldHex: l.LonFieldHex,
		LatField:    l.LatField,
		LonField:    l.LonField,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		CellToken:   services.CellToken(l.Coordinates(), services.DefaultCellLevel),
	}
}

func toSessionResponse(snap session.Snapshot) dto.SessionResponse {
	res := dto.SessionResponse{
		Records: make([]dto.LocationResponse, 0, len(snap.Records)),
		Copied:  snap.Copied,
	}
	for _, rec := range snap.Records {
		res.Records = append(res.Records, toLocationResponse(rec))
	}

	if len(res.Records) > 0 {
		active := res.Records[len(res.Records)-1]
		res.Active = &active
	}

	if n, err := services.Nearest(snap.Records); err == nil {
		res.Nearest = &dto.NeighborResponse{
			Index:      n.Index,
			SourceText: n.Location.SourceText,
			DistanceKm: n.DistanceKm,
		}
	}

	return res
}
