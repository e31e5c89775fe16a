// Package service provides the business service that implements the
// dependencies required by the HTTP API.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/cvparse/internal/adapters/blob"
	"github.com/okian/cvparse/internal/adapters/decode"
	"github.com/okian/cvparse/internal/adapters/docx"
	"github.com/okian/cvparse/internal/adapters/export"
	jobqueue "github.com/okian/cvparse/internal/adapters/mq/queue"
	workerpool "github.com/okian/cvparse/internal/adapters/mq/worker"
	"github.com/okian/cvparse/internal/adapters/repository"
	"github.com/okian/cvparse/internal/domain/dedupe"
	"github.com/okian/cvparse/internal/domain/extract"
	"github.com/okian/cvparse/internal/domain/model"
	"github.com/okian/cvparse/internal/domain/render"
	"github.com/okian/cvparse/internal/domain/types"
	"github.com/okian/cvparse/pkg/logger"
	"github.com/okian/cvparse/pkg/metrics"
)

// ErrNotStarted is returned by operations that need the running service.
var ErrNotStarted = errors.New("service not started")

// OutputPDF is the render format that falls back to DOCX.
const OutputPDF = "pdf"

const (
	defaultQueueSize   = 10000
	defaultDedupeSize  = 50000
	defaultMinText     = 10
	defaultStoragePath = "storage"
)

// engineAdapter exposes the engine to the workers and counts empty fields.
type engineAdapter struct {
	s *Service
}

func (a *engineAdapter) Extract(ctx context.Context, text string) (model.Record, error) {
	rec, err := a.s.engine.Extract(ctx, text)
	if err != nil {
		return rec, err
	}
	recordEmpty(rec)
	return rec, nil
}

func recordEmpty(rec model.Record) {
	for _, f := range rec.Empty() {
		metrics.RecordEmptyField(string(f))
	}
}

// Service implements the API dependencies for résumé extraction.
type Service struct {
	mu sync.RWMutex

	engine   *extract.Engine
	decoder  *decode.Decoder
	blobs    blob.Store
	store    repository.Store
	deduper  dedupe.Deduper
	jobQueue *jobqueue.InMemoryQueue
	pool     *workerpool.Pool

	workerCount   int
	queueSize     int
	dedupeSize    int
	minTextLength int
	pdfEnabled    bool
	storagePath   string

	started bool
	now     func() time.Time

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     defaultQueueSize,
		dedupeSize:    defaultDedupeSize,
		minTextLength: defaultMinText,
		storagePath:   defaultStoragePath,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the components and starts the workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting extraction service...")

	if s.blobs == nil {
		fs, err := blob.NewFileStore(s.storagePath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		s.blobs = fs
		s.logger.Info(ctx, "using filesystem blob store", logger.String("path", s.storagePath))
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using memory job store")
	}

	s.engine = extract.New(
		extract.WithMinTextLength(s.minTextLength),
		extract.WithFaultHook(s.onFault),
	)
	s.decoder = decode.New(decode.WithPDF(s.pdfEnabled))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.jobQueue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, &engineAdapter{s: s}, s.store)
	s.workerCount = s.pool.Size()
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "extraction service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Bool("pdf", s.pdfEnabled),
	)
	return nil
}

// Stop drains the queue and releases the store.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping extraction service...")

	var errs []error
	if err := s.pool.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("worker pool: %w", err))
	}
	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "extraction service stopped")
	return errors.Join(errs...)
}

func (s *Service) onFault(ctx context.Context, f model.Field, err error) {
	metrics.RecordFieldFault(string(f))
	s.logger.Warn(ctx, "field extraction fault", logger.String("field", string(f)), logger.Error(err))
}

func (s *Service) running() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Extract decodes the document and returns its record synchronously.
func (s *Service) Extract(ctx context.Context, filename string, r io.Reader) (model.Record, error) {
	if err := s.running(); err != nil {
		return model.Record{}, err
	}
	start := time.Now()

	text, err := s.decoder.Decode(ctx, filename, r)
	if err != nil {
		metrics.RecordExtractionFailure(model.Kind(err))
		return model.Record{}, err
	}
	rec, err := s.engine.Extract(ctx, text)
	if err != nil {
		metrics.RecordExtractionFailure(model.Kind(err))
		return model.Record{}, err
	}

	metrics.RecordExtraction("sync")
	metrics.RecordExtractionLatency(float64(time.Since(start).Microseconds()) / 1000)
	recordEmpty(rec)
	return rec, nil
}

// Submit stores the upload and queues it for extraction. Documents whose text
// was already submitted return the earlier job. Decoding errors are returned
// immediately; extraction errors end up on the job.
func (s *Service) Submit(ctx context.Context, filename string, r io.Reader) (types.Submission, error) {
	if err := s.running(); err != nil {
		return types.Submission{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return types.Submission{}, fmt.Errorf("read upload: %w", err)
	}
	text, err := s.decoder.Decode(ctx, filename, bytes.NewReader(data))
	if err != nil {
		metrics.RecordExtractionFailure(model.Kind(err))
		return types.Submission{}, err
	}

	id := uuid.NewString()
	fp := dedupe.Fingerprint(text)
	if owner, seen := s.deduper.Claim(ctx, fp, id); seen {
		metrics.RecordDuplicate()
		status := model.StatusQueued
		if j, err := s.store.Get(ctx, owner); err == nil {
			status = j.Status
		}
		s.logger.Debug(ctx, "duplicate submission", logger.String("id", owner), logger.String("filename", filename))
		return types.Submission{ID: owner, Status: status, Duplicate: true}, nil
	}

	job := model.Job{
		ID:          id,
		Fingerprint: fp,
		Filename:    filename,
		BlobKey:     uploadKey(id, filename),
		Text:        text,
		Status:      model.StatusQueued,
		Submitted:   s.now(),
	}
	if err := s.blobs.Put(ctx, job.BlobKey, bytes.NewReader(data), int64(len(data)), contentType(filename)); err != nil {
		s.deduper.Release(ctx, fp)
		return types.Submission{}, fmt.Errorf("store upload: %w", err)
	}
	if err := s.store.Save(ctx, job); err != nil {
		s.deduper.Release(ctx, fp)
		return types.Submission{}, fmt.Errorf("save job: %w", err)
	}

	if err := s.jobQueue.Enqueue(ctx, job); err != nil {
		s.rollback(ctx, &job)
		if errors.Is(err, jobqueue.ErrFull) || errors.Is(err, jobqueue.ErrClosed) {
			return types.Submission{}, fmt.Errorf("%w: %v", model.ErrBackpressure, err)
		}
		return types.Submission{}, fmt.Errorf("enqueue job: %w", err)
	}

	s.logger.Debug(ctx, "job queued", logger.String("id", id), logger.String("filename", filename))
	return types.Submission{ID: id, Status: model.StatusQueued}, nil
}

// rollback undoes a submission that could not be queued.
func (s *Service) rollback(ctx context.Context, j *model.Job) {
	s.deduper.Release(ctx, j.Fingerprint)
	if err := s.store.Delete(ctx, j.ID); err != nil {
		s.logger.Error(ctx, "rollback job", logger.String("id", j.ID), logger.Error(err))
	}
	if err := s.blobs.Delete(ctx, j.BlobKey); err != nil && !errors.Is(err, blob.ErrNotFound) {
		s.logger.Error(ctx, "rollback upload", logger.String("key", j.BlobKey), logger.Error(err))
	}
}

// Job returns the view of one job.
func (s *Service) Job(ctx context.Context, id string) (types.JobView, error) {
	if err := s.running(); err != nil {
		return types.JobView{}, err
	}
	j, err := s.store.Get(ctx, id)
	if err != nil {
		return types.JobView{}, err
	}
	return types.NewJobView(j), nil
}

// Jobs returns up to limit jobs, newest first.
func (s *Service) Jobs(ctx context.Context, limit int) ([]types.JobView, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	jobs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]types.JobView, len(jobs))
	for i := range jobs {
		views[i] = types.NewJobView(jobs[i])
	}
	return views, nil
}

// Render writes rec as a DOCX document, stores it in the resumes area and
// returns its name and content. A PDF output format falls back to DOCX.
func (s *Service) Render(ctx context.Context, rec model.Record, format string) (string, []byte, error) {
	if err := s.running(); err != nil {
		return "", nil, err
	}
	if format == OutputPDF {
		s.logger.Info(ctx, "pdf output not available, rendering docx")
	}

	data, err := docx.Bytes(render.Blocks(rec.WithoutPlaceholders()))
	if err != nil {
		return "", nil, fmt.Errorf("render docx: %w", err)
	}
	name := docx.Name()
	if err := s.blobs.Put(ctx, blob.Key(blob.AreaResumes, name), bytes.NewReader(data), int64(len(data)), docx.ContentType); err != nil {
		return "", nil, fmt.Errorf("store document: %w", err)
	}

	metrics.RecordRender()
	return name, data, nil
}

// Export returns the records of all finished jobs as an XLSX workbook.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	jobs, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]export.Row, 0, len(jobs))
	for i := range jobs {
		if jobs[i].Status == model.StatusDone {
			rows = append(rows, export.Row{ID: jobs[i].ID, Record: jobs[i].Record})
		}
	}
	return export.XLSX(rows)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"pdfEnabled":  s.pdfEnabled,
	}
	if s.started {
		ctx := context.Background()
		queueLen := s.jobQueue.Len(ctx)
		jobs := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["jobsStored"] = jobs
		stats["fingerprints"] = s.deduper.Size()

		metrics.UpdateJobsStored(jobs)
	}
	return stats
}

// uploadKey prefixes the upload's base name with the job id.
func uploadKey(id, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return blob.Key(blob.AreaUploads, id+"_"+name)
}

func contentType(filename string) string {
	f, _ := decode.Detect(filename)
	switch f {
	case decode.FormatDOCX:
		return docx.ContentType
	case decode.FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}
