package model

import "errors"

// Whole-call failure kinds. Field level faults never surface as errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrPDFDisabled       = errors.New("pdf decoding disabled")
	ErrTextTooShort      = errors.New("text empty or too short")
	ErrInvalidRecord     = errors.New("invalid record")
)

// Service level failures.
var (
	ErrJobNotFound  = errors.New("job not found")
	ErrBackpressure = errors.New("job queue is full, retry later")
)

// User facing messages for each failure kind.
const (
	MsgUnsupportedFormat = "Unsupported file format. Please use DOCX or PDF."
	MsgPDFDisabled       = "PDF parsing is disabled. Please enable PDF support or use DOCX format."
	MsgTextTooShort      = "Could not extract text from the file. Please check the file format or content."
)

// ExtractionError is a whole-call failure carrying a human readable message.
type ExtractionError struct {
	Kind    error
	Message string
}

func (e *ExtractionError) Error() string { return e.Message }

func (e *ExtractionError) Unwrap() error { return e.Kind }

// UnsupportedFormat reports input that cannot be decoded to text.
func UnsupportedFormat() error {
	return &ExtractionError{Kind: ErrUnsupportedFormat, Message: MsgUnsupportedFormat}
}

// PDFDisabled reports a PDF upload while PDF decoding is switched off.
func PDFDisabled() error {
	return &ExtractionError{Kind: ErrPDFDisabled, Message: MsgPDFDisabled}
}

// TextTooShort reports decoded text below the usable length.
func TextTooShort() error {
	return &ExtractionError{Kind: ErrTextTooShort, Message: MsgTextTooShort}
}

// ErrorRecord converts a whole-call failure into the error-shaped result.
func ErrorRecord(err error) map[string]string {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return map[string]string{"error": ee.Message}
	}
	return map[string]string{"error": err.Error()}
}

// Kind returns a short label for err, used in metrics and API error codes.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrPDFDisabled):
		return "unsupported_format"
	case errors.Is(err, ErrTextTooShort):
		return "unextractable"
	case errors.Is(err, ErrInvalidRecord):
		return "invalid_record"
	case errors.Is(err, ErrJobNotFound):
		return "not_found"
	case errors.Is(err, ErrBackpressure):
		return "backpressure"
	default:
		return "internal"
	}
}
