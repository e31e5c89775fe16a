// Package decode turns uploaded documents into plain text.
package decode

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"

	"github.com/okian/cvparse/internal/domain/model"
)

// Format is a supported document container.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatText Format = "txt"
)

// Detect returns the format implied by the file extension.
func Detect(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return FormatDOCX, true
	case ".pdf":
		return FormatPDF, true
	case ".txt":
		return FormatText, true
	default:
		return "", false
	}
}

// Option applies a configuration option to the Decoder.
type Option func(*Decoder)

// WithPDF enables or disables PDF decoding.
func WithPDF(enabled bool) Option {
	return func(d *Decoder) {
		d.pdfEnabled = enabled
	}
}

// Decoder converts documents to text. PDF support is decided once, when the
// Decoder is built.
type Decoder struct {
	pdfEnabled bool
}

// New creates a Decoder. PDF decoding is off unless enabled.
func New(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// PDFEnabled reports whether PDF input is accepted.
func (d *Decoder) PDFEnabled() bool { return d.pdfEnabled }

// Decode reads r fully and returns its text. Unknown extensions fail with the
// unsupported format error, PDF input while disabled with the PDF disabled
// error, and a container that cannot be read with the too-short error.
func (d *Decoder) Decode(ctx context.Context, filename string, r io.Reader) (string, error) {
	format, ok := Detect(filename)
	if !ok {
		return "", model.UnsupportedFormat()
	}
	if format == FormatPDF && !d.pdfEnabled {
		return "", model.PDFDisabled()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}

	var text string
	switch format {
	case FormatDOCX:
		text, err = docxText(data)
	case FormatPDF:
		text, err = pdfText(data)
	default:
		text = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("decode %s: %v: %w", format, err, model.TextTooShort())
	}
	return text, nil
}

func docxText(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return text, nil
}

// pdfText recovers from reader panics, which malformed files can trigger.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
