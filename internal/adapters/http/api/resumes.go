package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ResumesHandler handles asynchronous submissions and job reads.
type ResumesHandler struct {
	deps      Dependencies
	maxUpload int64
}

// NewResumesHandler creates a new resumes handler.
func NewResumesHandler(deps Dependencies, maxUpload int64) *ResumesHandler {
	return &ResumesHandler{deps: deps, maxUpload: maxUpload}
}

// HandleResumes handles POST /resumes (submit) and GET /resumes (list).
func (h *ResumesHandler) HandleResumes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.submit(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ResumesHandler) submit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_resume"

	name, data, err := readUpload(w, r, h.maxUpload)
	if err != nil {
		writeUploadError(w, op, err)
		return
	}
	sub, err := h.deps.Submit(r.Context(), name, bytes.NewReader(data))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sub.Duplicate {
		writeJSON(w, http.StatusOK, sub)
		return
	}
	writeJSON(w, http.StatusAccepted, sub)
}

func (h *ResumesHandler) list(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_resumes"

	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrInvalidLimit))
			return
		}
		limit = min(n, maxListLimit)
	}

	views, err := h.deps.Jobs(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleGetResume handles GET /resumes/{id} requests.
func (h *ResumesHandler) HandleGetResume(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_resume"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/resumes/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errEmptyID))
		return
	}

	view, err := h.deps.Job(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
