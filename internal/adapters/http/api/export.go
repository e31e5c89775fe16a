package api

import (
	"net/http"

	"github.com/okian/cvparse/internal/adapters/export"
)

// ExportHandler serves the spreadsheet of stored records.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /export.xlsx requests.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	data, err := h.deps.Export(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeFile(w, export.ContentType, "resumes.xlsx", data)
}
