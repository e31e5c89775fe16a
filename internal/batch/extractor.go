package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/cvparse/internal/adapters/decode"
	"github.com/okian/cvparse/internal/domain/extract"
	"github.com/okian/cvparse/internal/domain/model"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Extractor turns one file into a record.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (model.Record, error)
}

// LocalExtractor decodes and extracts in process.
type LocalExtractor struct {
	decoder *decode.Decoder
	engine  *extract.Engine
}

// NewLocalExtractor creates an extractor backed by the in-process engine.
func NewLocalExtractor(pdfEnabled bool, opts ...extract.Option) *LocalExtractor {
	return &LocalExtractor{
		decoder: decode.New(decode.WithPDF(pdfEnabled)),
		engine:  extract.New(opts...),
	}
}

func (l *LocalExtractor) Extract(ctx context.Context, filename string, data []byte) (model.Record, error) {
	text, err := l.decoder.Decode(ctx, filename, bytes.NewReader(data))
	if err != nil {
		return model.Record{}, err
	}
	return l.engine.Extract(ctx, text)
}

// RemoteExtractor posts files to the /extract endpoint of a running service.
type RemoteExtractor struct {
	client  *http.Client
	baseURL string
}

// NewRemoteExtractor creates an extractor that calls the service at baseURL.
func NewRemoteExtractor(baseURL string, timeout time.Duration) *RemoteExtractor {
	return &RemoteExtractor{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// RemoteError is a non-200 answer of the service.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service answered %d", e.Status)
	}
	return e.Message
}

// Health checks that the service answers on /healthz.
func (r *RemoteExtractor) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &RemoteError{Status: resp.StatusCode}
	}
	return nil
}

func (r *RemoteExtractor) Extract(ctx context.Context, filename string, data []byte) (model.Record, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return model.Record{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return model.Record{}, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return model.Record{}, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/extract", &body)
	if err != nil {
		return model.Record{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return model.Record{}, fmt.Errorf("post %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		remote := &RemoteError{Status: resp.StatusCode}
		var payload struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&payload); err == nil {
			remote.Code, remote.Message = payload.Code, payload.Message
		}
		return model.Record{}, remote
	}

	var rec model.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return model.Record{}, fmt.Errorf("decode response for %s: %w", filename, err)
	}
	return rec, nil
}
