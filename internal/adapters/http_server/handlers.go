package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"reviewkit/internal/app"
	"reviewkit/internal/domain"
)

type Handlers struct{ S *app.Service }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/businesses/{id}/analysis", h.generate)
	s.mux.Get("/v1/businesses/{id}/analysis", h.getAnalysis)
	s.mux.Get("/v1/businesses/{id}/analysis/summary", h.getSummary)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the domain error taxonomy onto problem+json responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "business not found")
	case errors.Is(err, domain.ErrSnapshotMiss):
		writeProblem(w, http.StatusNotFound, "Not Found", "no analysis generated yet")
	case errors.Is(err, domain.ErrNoReviews):
		writeProblem(w, http.StatusUnprocessableEntity, "No Reviews", "business has no reviews to analyze")
	case errors.Is(err, domain.ErrOracleUnavailable):
		writeProblem(w, http.StatusBadGateway, "Oracle Unavailable", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// analysisResponse is the full snapshot plus the radar projection.
type analysisResponse struct {
	domain.Snapshot
	RadarPoints []domain.RadarPoint `json:"radar_points"`
}

func (h *Handlers) generate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.S.Generate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(analysisResponse{Snapshot: snap, RadarPoints: snap.Radar()}); err != nil {
		log.Error().Err(err).Msg("failed to write generate response")
	}
}

func (h *Handlers) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.S.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, analysisResponse{Snapshot: snap, RadarPoints: snap.Radar()})
}

func (h *Handlers) getSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sum, err := h.S.Summary(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, sum)
}
