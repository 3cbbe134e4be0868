package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// MaxUploadSize is the upload size limit in bytes. A file of exactly
	// this size is accepted; one byte more is rejected.
	MaxUploadSize = 10 * 1024 * 1024

	// MIMEPDF is the accepted PDF content type.
	MIMEPDF = "application/pdf"

	// MIMEDOCX is the accepted DOCX content type.
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UploadResult is the backend response to a document upload: the stored
// document, the template extracted from it, and its question list.
type UploadResult struct {
	DocumentID   string          `json:"document_id"`
	DocumentName string          `json:"document_name"`
	Template     TemplateSummary `json:"template"`
	Questions    []Question      `json:"questions,omitempty"`
}

// ValidateUpload checks the file type and size before any network call.
// Violations never reach the backend.
func ValidateUpload(contentType string, size int64) error {
	if contentType != MIMEPDF && contentType != MIMEDOCX {
		return fmt.Errorf("%w: %s (only PDF and DOCX are accepted)", ErrUnsupportedFileType, contentType)
	}
	if size > MaxUploadSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, MaxUploadSize)
	}
	return nil
}

// ContentTypeForFile infers the upload content type from the file
// extension. Returns an empty string for unsupported extensions.
func ContentTypeForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	}
	return ""
}
