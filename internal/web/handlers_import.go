package web

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/JonMunkholm/runsheet/internal/core"
)

// multipartOverhead is the allowance for form boundaries and headers on top
// of the CSV itself.
const multipartOverhead = 64 << 10

// csvBody returns the CSV payload of r: the "file" part of a multipart form,
// or the raw body for any other content type. The facade enforces the size
// limit; MaxBytesReader only stops clients from streaming without end.
func (s *Server) csvBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, core.ErrFileTooLarge
		}
		return nil, badRequest{msg: "invalid multipart form"}
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, badRequest{msg: "no file provided"}
	}
	return file, nil
}

// handleImport replaces a project's roster from an uploaded CSV.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := s.csvBody(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer body.Close()

	ctx := WithRequestMetadata(r.Context(), r)
	res, err := s.service.ImportCSV(ctx, projectID(r), body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleValidateRoster ingests a CSV without touching any project.
func (s *Server) handleValidateRoster(w http.ResponseWriter, r *http.Request) {
	body, err := s.csvBody(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer body.Close()

	res, err := s.service.ValidateRoster(r.Context(), body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"acts":   res.Acts,
		"days":   res.Days,
		"errors": res.Messages(),
		"issues": res.Issues,
	})
}
