package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/pagetoc/internal/page"
)

// handleRender returns the uploaded page with its table of contents.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	out, ok := s.renderUpload(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-TOC-Rendered", strconv.FormatBool(out.Result.Rendered))
	w.Write(out.HTML)
}

// handleOutline returns only the outline of the uploaded page.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	out, ok := s.renderUpload(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"rendered": out.Result.Rendered,
		"sections": out.Sections(),
	})
}

// renderUpload reads the "file" form field and renders it. On failure it
// has already written the error response.
func (s *Server) renderUpload(w http.ResponseWriter, r *http.Request) (*page.Output, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	filename, data, err := s.readUpload(file, header)
	if err != nil {
		writeUploadError(w, err)
		return nil, false
	}

	opts := s.opts
	if r.FormValue("replace") == "true" {
		opts.TOC.Replace = true
	}

	out, err := page.Render(filename, data, opts)
	if err != nil {
		code := http.StatusUnprocessableEntity
		if errors.Is(err, page.ErrUnsupported) {
			code = http.StatusBadRequest
		}
		jsonError(w, err.Error(), code)
		return nil, false
	}
	return out, true
}

var (
	errUnsupportedUpload = errors.New("unsupported file type")
	errTooLarge          = errors.New("file too large")
)

// readUpload validates the extension and size of an uploaded file.
func (s *Server) readUpload(file multipart.File, header *multipart.FileHeader) (string, []byte, error) {
	filename := sanitizeFilename(header.Filename)
	if !page.IsSupported(filename) {
		return filename, nil, fmt.Errorf("%w: %s", errUnsupportedUpload, filepath.Ext(filename))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return filename, nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return filename, nil, fmt.Errorf("%w: exceeds %d bytes", errTooLarge, s.cfg.MaxUploadBytes)
	}
	return filename, data, nil
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errUnsupportedUpload):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, errTooLarge):
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
