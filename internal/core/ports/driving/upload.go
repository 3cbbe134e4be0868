package driving

import (
	"context"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

// UploadService uploads source documents to the backend, validating
// file type and size client-side first.
type UploadService interface {
	// UploadFile validates and uploads the file at path.
	// Validation failures (type, size) are returned before any network
	// call is made.
	UploadFile(ctx context.Context, path string) (*domain.UploadResult, error)
}
