// Package cli implements the lexdraft command-line interface. Commands
// hold no business logic; they parse input, call the driving ports and
// render output.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/lexdraft-labs/lexdraft-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	chatService     driving.ChatService
	templateService driving.TemplateService
	uploadService   driving.UploadService
	draftService    driving.DraftService
	settingsService driving.SettingsService
)

// Services bundles the driving ports the CLI depends on.
type Services struct {
	Chat     driving.ChatService
	Template driving.TemplateService
	Upload   driving.UploadService
	Draft    driving.DraftService
	Settings driving.SettingsService
}

// SetServices wires the driving ports into the command tree.
func SetServices(s Services) {
	chatService = s.Chat
	templateService = s.Template
	uploadService = s.Upload
	draftService = s.Draft
	settingsService = s.Settings
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lexdraft",
	Short: "Draft legal documents from templates",
	Long: `Lexdraft is a client for an AI-assisted legal drafting service.

Describe the document you need and lexdraft matches it to a template,
asks the questions the template needs, and generates a draft. Upload
your own PDF or DOCX documents to turn them into reusable templates.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context, which
// commands receive via cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
