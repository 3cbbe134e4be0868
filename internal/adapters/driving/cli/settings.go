package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage client settings",
	Long: `View and configure the client's connection to the drafting backend.

The base URL can also be overridden per-invocation with the
LEXDRAFT_BASE_URL environment variable.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsURLCmd = &cobra.Command{
	Use:   "url [base-url]",
	Short: "Set the backend base URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsURL,
}

var settingsTimeoutCmd = &cobra.Command{
	Use:   "timeout [seconds]",
	Short: "Set the request timeout in seconds",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsTimeout,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsURLCmd)
	settingsCmd.AddCommand(settingsTimeoutCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("  Backend URL:     %s\n", settings.BaseURL)
	cmd.Printf("  Request timeout: %s\n", settings.RequestTimeout)
	cmd.Printf("  Verbose:         %t\n", settings.Verbose)
	return nil
}

func runSettingsURL(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetBaseURL(args[0]); err != nil {
		return fmt.Errorf("failed to set base URL: %w", err)
	}
	cmd.Printf("Backend URL set to %s\n", args[0])
	return nil
}

func runSettingsTimeout(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var secs int
	if _, err := fmt.Sscanf(args[0], "%d", &secs); err != nil || secs <= 0 {
		return fmt.Errorf("invalid timeout: %q", args[0])
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.RequestTimeout = time.Duration(secs) * time.Second
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Request timeout set to %ds\n", secs)
	return nil
}
