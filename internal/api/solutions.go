package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/katalvlaran/tlp/codec"
	"github.com/katalvlaran/tlp/internal/service"
	"github.com/katalvlaran/tlp/internal/store"
	"github.com/katalvlaran/tlp/report"
	"github.com/katalvlaran/tlp/transport"
)

type SolutionsHandler struct {
	svc          *service.SolveService
	maxBodyBytes int64
}

func NewSolutionsHandler(svc *service.SolveService, maxBodyBytes int64) *SolutionsHandler {
	return &SolutionsHandler{svc: svc, maxBodyBytes: maxBodyBytes}
}

// Solve accepts a JSON problem, or YAML when the content type or
// ?format=yaml says so.
func (h *SolutionsHandler) Solve(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r)
	if err != nil {
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": err.Error()})
		return
	}
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	p, err := codec.Decode(r.Body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rec, err := h.svc.Solve(r.Context(), p, service.SourceHTTP)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProblem) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (h *SolutionsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	recs, err := h.svc.List(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *SolutionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Report renders a stored solution as the plain-text summary and tables.
func (h *SolutionsHandler) Report(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	report.Write(w, rec.Result, transport.ParseDummyKind(rec.Dummy))
}

func (h *SolutionsHandler) lookup(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid solution id"})
		return nil, false
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "solution not found"})
		return nil, false
	}
	return rec, true
}

func requestFormat(r *http.Request) (codec.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return codec.ParseFormat(f)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return codec.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", err
	}
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return codec.FormatYAML, nil
	default:
		return codec.FormatJSON, nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
