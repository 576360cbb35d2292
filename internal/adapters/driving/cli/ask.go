package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question]",
	Short: "Ask a question about a document",
	Long: `Ask a natural-language question about a processed document.

The answer is grounded in the document's indexed content. Sources list
the evidence chunk indices, most relevant first.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

// askJSON switches the output to machine-readable JSON.
var askJSON bool

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Output the result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	documentID := args[0]
	question := strings.Join(args[1:], " ")

	result, err := queryService.Answer(context.Background(), question, documentID)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	if askJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Println(result.Answer)
	cmd.Println()
	if len(result.Sources) > 0 {
		parts := make([]string, len(result.Sources))
		for i, idx := range result.Sources {
			parts[i] = fmt.Sprintf("%d", idx)
		}
		cmd.Printf("Sources:    chunks %s\n", strings.Join(parts, ", "))
	}
	cmd.Printf("Confidence: %.2f\n", result.Confidence)

	return nil
}
