package rest

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/service/importer"
)

// maxUploadBytes caps vocab.db uploads. Device databases run a few megabytes.
const maxUploadBytes = 64 << 20

type importService interface {
	ImportFile(ctx context.Context, path string) (importer.Summary, error)
}

// ImportHandler serves Kindle vocabulary uploads.
type ImportHandler struct {
	importer importService
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(importer importService) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// Upload takes a multipart vocab.db upload under the "vocab_db" field, spools
// it to a temp file and imports its lookups.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, domain.NewValidationError("vocab_db", "invalid multipart upload: "+err.Error()))
		return
	}

	file, _, err := r.FormFile("vocab_db")
	if err != nil {
		writeError(w, r, domain.NewValidationError("vocab_db", "missing vocab_db file"))
		return
	}
	defer file.Close()

	tmpDir, err := os.MkdirTemp("", "vocab-import-*")
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, "vocab.db")
	tmp, err := os.Create(tmpPath)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, r, err)
		return
	}
	if err := tmp.Close(); err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.importer.ImportFile(r.Context(), tmpPath)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
