package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [doc-id]",
	Short: "Interactive chat about a document",
	Long: `Open an interactive chat session for asking questions about a
processed document. Prior questions and answers are restored from the
document's transcript.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, args []string) error {
	if queryService == nil || documentService == nil {
		return errors.New("services not configured")
	}

	ports := tui.NewPorts(queryService, documentService)
	if err := tui.Run(ports, args[0]); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
