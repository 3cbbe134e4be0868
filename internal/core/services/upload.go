package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/lexdraft-labs/lexdraft-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService uploads source documents, enforcing type and size
// limits before any bytes leave the machine.
type UploadService struct {
	backend driven.BackendClient
}

// NewUploadService creates a new upload service.
func NewUploadService(backend driven.BackendClient) *UploadService {
	return &UploadService{backend: backend}
}

// UploadFile validates and uploads the file at path.
func (s *UploadService) UploadFile(ctx context.Context, path string) (*domain.UploadResult, error) {
	name := filepath.Base(path)

	contentType := domain.ContentTypeForFile(name)
	if contentType == "" {
		return nil, fmt.Errorf("%w: %s (only PDF and DOCX are accepted)", domain.ErrUnsupportedFileType, name)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := domain.ValidateUpload(contentType, info.Size()); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	logger.Debug("uploading %s (%d bytes, %s)", name, info.Size(), contentType)
	return s.backend.Upload(ctx, name, contentType, info.Size(), f)
}
