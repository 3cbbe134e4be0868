package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sessionsJSON bool

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored chat sessions",
	Long:  `List, inspect and delete chat sessions stored on this machine.`,
	RunE:  runSessionsList,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsCmd.PersistentFlags().BoolVar(&sessionsJSON, "json", false, "output as JSON")
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	sessions, err := chatService.Sessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("list sessions failed: %w", err)
	}

	if sessionsJSON {
		return outputJSON(cmd, sessions)
	}

	if len(sessions) == 0 {
		cmd.Println("No sessions stored.")
		return nil
	}

	for i := range sessions {
		s := &sessions[i]
		cmd.Printf("  %s  %s\n", s.ID, s.Title)
		cmd.Printf("      updated %s, %d message(s)\n",
			s.UpdatedAt.Local().Format("2006-01-02 15:04"), len(s.Messages))
		if s.TemplateTitle != "" {
			cmd.Printf("      template: %s\n", s.TemplateTitle)
		}
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	session, err := chatService.Switch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("load session failed: %w", err)
	}

	if sessionsJSON {
		return outputJSON(cmd, session)
	}

	cmd.Printf("%s\n", session.Title)
	if session.TemplateTitle != "" {
		cmd.Printf("template: %s\n", session.TemplateTitle)
	}
	cmd.Println()

	for i := range session.Messages {
		m := &session.Messages[i]
		cmd.Printf("[%s] %s\n", m.Role, m.Content)
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if err := chatService.DeleteSession(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	cmd.Printf("Deleted session %s\n", args[0])
	return nil
}
