package api

import (
	"bytes"
	"net/http"
	"strconv"
)

// ExtractHandler handles synchronous extraction requests.
type ExtractHandler struct {
	deps      Dependencies
	maxUpload int64
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(deps Dependencies, maxUpload int64) *ExtractHandler {
	return &ExtractHandler{deps: deps, maxUpload: maxUpload}
}

// HandleExtract handles POST /extract requests. With ?placeholders=true
// empty values are replaced by the placeholder text.
func (h *ExtractHandler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	const op = "api.extract"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	name, data, err := readUpload(w, r, h.maxUpload)
	if err != nil {
		writeUploadError(w, op, err)
		return
	}

	rec, err := h.deps.Extract(r.Context(), name, bytes.NewReader(data))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if placeholders, _ := strconv.ParseBool(r.URL.Query().Get("placeholders")); placeholders {
		rec = rec.WithPlaceholders()
	}
	writeJSON(w, http.StatusOK, rec)
}
