package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	apperrors "vidtube/pkg/errors"

	"github.com/google/uuid"
)

// maxUploadSize bounds the in-memory portion of multipart parsing; larger
// parts spill to disk.
const maxUploadSize = 32 << 20

// stageUpload copies the named multipart file into tempDir and returns its
// local path. A missing part returns an empty path with no error; the
// caller decides whether the part was required.
func stageUpload(r *http.Request, field, tempDir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewValidationError("invalid " + field + " upload")
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	localPath := filepath.Join(tempDir, uuid.NewString()+ext)

	dst, err := os.Create(localPath)
	if err != nil {
		return "", apperrors.NewInternalError("failed to stage upload", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(localPath)
		return "", apperrors.NewInternalError("failed to stage upload", err)
	}
	return localPath, nil
}

// removeStaged deletes a staged upload once it has been shipped to storage
func removeStaged(paths ...string) {
	for _, path := range paths {
		if path != "" {
			os.Remove(path)
		}
	}
}
