package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/okian/cvparse/internal/adapters/docx"
	"github.com/okian/cvparse/internal/domain/model"
)

var errEmptyID = errors.New("missing id")

// RenderHandler turns a record into a document.
type RenderHandler struct {
	deps      Dependencies
	maxUpload int64
}

// NewRenderHandler creates a new render handler.
func NewRenderHandler(deps Dependencies, maxUpload int64) *RenderHandler {
	return &RenderHandler{deps: deps, maxUpload: maxUpload}
}

// HandleRender handles POST /render requests. The body is a complete record
// as returned by /extract; ?output_format selects docx (default) or pdf.
func (h *RenderHandler) HandleRender(w http.ResponseWriter, r *http.Request) {
	const op = "api.render"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUpload))
	if err != nil {
		writeUploadError(w, op, err)
		return
	}
	rec, err := model.DecodeRecord(body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	name, data, err := h.deps.Render(r.Context(), rec, r.URL.Query().Get("output_format"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeFile(w, docx.ContentType, name, data)
}
