// Package cli implements the doclens command line interface.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/core/ports/driving"
	"github.com/doclens/doclens/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired in by the composition root before Execute.
var (
	ingestService   driving.IngestService
	queryService    driving.QueryService
	documentService driving.DocumentService
	settingsService driving.SettingsService
)

// verbose enables debug logging.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "doclens",
	Short: "Ask questions about your documents",
	Long: `Doclens ingests documents (PDF, DOCX, plain text), analyses them
and answers natural-language questions grounded in their content.

Example usage:
  doclens ingest report.pdf              # Process a document
  doclens ask <doc-id> "What is ...?"    # Ask a question
  doclens chat <doc-id>                  # Interactive chat
  doclens document list                  # List processed documents`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Services bundles the driving ports the commands depend on.
type Services struct {
	Ingest   driving.IngestService
	Query    driving.QueryService
	Document driving.DocumentService
	Settings driving.SettingsService
}

// SetServices wires the core services into the command tree.
func SetServices(s Services) {
	ingestService = s.Ingest
	queryService = s.Query
	documentService = s.Document
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// maskAPIKey hides all but the edges of an API key for display.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
