package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
)

// writeTestFile creates a file of the given size in a temp dir.
func writeTestFile(t *testing.T, name string, size int64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

func TestUploadService_UploadFile(t *testing.T) {
	var gotName, gotType string
	var gotSize int64
	backend := &mockBackend{
		uploadFn: func(_ context.Context, filename, contentType string, size int64, r io.Reader) (*domain.UploadResult, error) {
			gotName, gotType, gotSize = filename, contentType, size
			return &domain.UploadResult{
				DocumentID:   "doc1",
				DocumentName: filename,
				Template:     domain.TemplateSummary{ID: "t1", Title: "Extracted"},
			}, nil
		},
	}
	svc := NewUploadService(backend)

	path := writeTestFile(t, "contract.pdf", 2048)
	result, err := svc.UploadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "doc1", result.DocumentID)
	assert.Equal(t, "contract.pdf", gotName)
	assert.Equal(t, domain.MIMEPDF, gotType)
	assert.Equal(t, int64(2048), gotSize)
}

func TestUploadService_UploadFile_DOCX(t *testing.T) {
	backend := &mockBackend{
		uploadFn: func(_ context.Context, _, contentType string, _ int64, _ io.Reader) (*domain.UploadResult, error) {
			assert.Equal(t, domain.MIMEDOCX, contentType)
			return &domain.UploadResult{DocumentID: "doc2"}, nil
		},
	}

	path := writeTestFile(t, "agreement.DOCX", 100)
	_, err := NewUploadService(backend).UploadFile(context.Background(), path)
	require.NoError(t, err)
}

func TestUploadService_UploadFile_RejectsType(t *testing.T) {
	// No stubbed upload: validation must fail before any backend call.
	svc := NewUploadService(&mockBackend{})

	path := writeTestFile(t, "notes.txt", 10)
	_, err := svc.UploadFile(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestUploadService_UploadFile_SizeBoundary(t *testing.T) {
	backend := &mockBackend{
		uploadFn: func(context.Context, string, string, int64, io.Reader) (*domain.UploadResult, error) {
			return &domain.UploadResult{DocumentID: "doc3"}, nil
		},
	}
	svc := NewUploadService(backend)

	// Exactly at the limit is accepted.
	atLimit := writeTestFile(t, "limit.pdf", domain.MaxUploadSize)
	_, err := svc.UploadFile(context.Background(), atLimit)
	assert.NoError(t, err)

	// One byte over is rejected before the backend is reached.
	over := writeTestFile(t, "over.pdf", domain.MaxUploadSize+1)
	_, err = NewUploadService(&mockBackend{}).UploadFile(context.Background(), over)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestUploadService_UploadFile_MissingFile(t *testing.T) {
	svc := NewUploadService(&mockBackend{})

	_, err := svc.UploadFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
