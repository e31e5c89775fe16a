package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
)

const multipartMemory = 1 << 20

// readUpload returns the uploaded file name and content. The document comes
// either as the "file" field of a multipart form or as the raw body with the
// name in the filename query parameter.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			if tooLarge(err) {
				return "", nil, ErrTooLarge
			}
			return "", nil, ErrMissingFile
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return "", nil, ErrMissingFile
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", nil, err
		}
		return hdr.Filename, data, nil
	}

	name := strings.TrimSpace(r.URL.Query().Get("filename"))
	if name == "" {
		return "", nil, ErrMissingFile
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		if tooLarge(err) {
			return "", nil, ErrTooLarge
		}
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, ErrMissingFile
	}
	return name, data, nil
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

// writeUploadError answers a failed readUpload.
func writeUploadError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "bad_request", NewKind(op, ErrTooLarge))
	case errors.Is(err, ErrMissingFile):
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingFile))
	default:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	}
}
