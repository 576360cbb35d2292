package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Process a document for question answering",
	Long: `Read a document file, extract its text, analyse it and index its
content for question answering.

The document id is printed on completion. Use it with 'doclens ask'
and 'doclens chat'.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

// Flags for the ingest command.
var (
	ingestID    string
	ingestAsync bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestID, "id", "", "Document id (defaults to a new UUID; reusing an id replaces the document)")
	ingestCmd.Flags().BoolVar(&ingestAsync, "async", false, "Return immediately and process in the background")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	documentID := ingestID
	if documentID == "" {
		documentID = uuid.NewString()
	}
	filename := filepath.Base(path)

	ctx := context.Background()

	if ingestAsync {
		if err := ingestService.ProcessDocumentAsync(ctx, content, filename, documentID); err != nil {
			return fmt.Errorf("failed to start processing: %w", err)
		}
		cmd.Printf("Processing started for %s\n", filename)
		cmd.Printf("Document id: %s\n", documentID)
		cmd.Println("Check progress with 'doclens document status'.")
		return nil
	}

	cmd.Printf("Processing %s...\n", filename)
	start := time.Now()

	if err := ingestService.ProcessDocument(ctx, content, filename, documentID); err != nil {
		return fmt.Errorf("failed to process document: %w", err)
	}

	doc, err := documentService.Get(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to read processing result: %w", err)
	}

	cmd.Printf("Done in %s.\n\n", time.Since(start).Round(time.Millisecond))
	cmd.Printf("Document id: %s\n", doc.ID)
	cmd.Printf("Status:      %s\n", doc.Status)

	switch doc.Status {
	case domain.StatusFailed:
		cmd.Printf("Reason:      %s\n", doc.StatusReason)
	case domain.StatusCompleted:
		if doc.Summary != "" {
			cmd.Printf("Summary:     %s\n", doc.Summary)
		}
		if !doc.RAGIndexed {
			cmd.Println("\nNote: indexed without RAG support; answers will use direct extraction.")
		}
	}

	return nil
}
