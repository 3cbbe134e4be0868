package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document and turn it into a template",
	Long: `Uploads a PDF or DOCX document to the drafting backend.

The backend extracts a reusable template from the document, including
the variables a future draft will need. Files larger than 10 MB are
rejected before upload.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	result, err := uploadService.UploadFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %s\n", result.DocumentName)
	cmd.Printf("  Document ID: %s\n", result.DocumentID)
	cmd.Printf("  Template:    %s (%s)\n", result.Template.Title, result.Template.ID)
	if len(result.Questions) > 0 {
		cmd.Printf("  Variables:   %d\n", len(result.Questions))
	}
	return nil
}
