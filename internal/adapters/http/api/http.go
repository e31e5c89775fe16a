// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/cvparse/internal/domain/model"
	"github.com/okian/cvparse/internal/domain/types"
)

// DefaultMaxUploadBytes caps request bodies when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Extract decodes and extracts a document synchronously.
	Extract(ctx context.Context, filename string, r io.Reader) (model.Record, error)

	// Submit queues a document for asynchronous extraction.
	Submit(ctx context.Context, filename string, r io.Reader) (types.Submission, error)

	// Read operations expose jobs.
	Job(ctx context.Context, id string) (types.JobView, error)
	Jobs(ctx context.Context, limit int) ([]types.JobView, error)

	// Render returns the generated document name and content.
	Render(ctx context.Context, rec model.Record, format string) (string, []byte, error)

	// Export returns every finished record as a workbook.
	Export(ctx context.Context) ([]byte, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	extractHandler *ExtractHandler
	resumesHandler *ResumesHandler
	renderHandler  *RenderHandler
	exportHandler  *ExportHandler
}

// NewServer creates an API server with all handlers. maxUpload <= 0 uses
// DefaultMaxUploadBytes.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxUpload int64) *Server {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		extractHandler: NewExtractHandler(deps, maxUpload),
		resumesHandler: NewResumesHandler(deps, maxUpload),
		renderHandler:  NewRenderHandler(deps, maxUpload),
		exportHandler:  NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/extract", MetricsMiddleware(s.extractHandler.HandleExtract, "extract"))
	mux.HandleFunc("/resumes", MetricsMiddleware(s.resumesHandler.HandleResumes, "resumes"))
	mux.HandleFunc("/resumes/", MetricsMiddleware(s.resumesHandler.HandleGetResume, "resume"))
	mux.HandleFunc("/render", MetricsMiddleware(s.renderHandler.HandleRender, "render"))
	mux.HandleFunc("/export.xlsx", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError answers with the status matching err.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code, msg := statusFor(err)
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeFile(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
