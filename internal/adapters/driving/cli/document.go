package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage processed documents",
	Long:  `List, view, delete processed documents and read their transcripts.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List processed documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentStatusCmd = &cobra.Command{
	Use:   "status [doc-id]",
	Short: "Show processing status",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentStatus,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Long:  `Removes a document, its stored original and its question history.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentTranscriptCmd = &cobra.Command{
	Use:   "transcript [doc-id]",
	Short: "Show the question history for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentTranscript,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentStatusCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentTranscriptCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found. Add one with 'doclens ingest'.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title:  %s\n", docs[i].Title)
		cmd.Printf("    Status: %s\n", formatStatus(&docs[i]))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:      %s\n", doc.Title)
	cmd.Printf("  Media type: %s\n", doc.MediaType)
	cmd.Printf("  Size:       %d bytes\n", doc.FileSize)
	cmd.Printf("  Status:     %s\n", formatStatus(doc))
	cmd.Printf("  RAG index:  %t\n", doc.RAGIndexed)
	cmd.Printf("  Created:    %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:    %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))

	if doc.Summary != "" {
		cmd.Printf("\n  Summary: %s\n", doc.Summary)
	}

	if doc.Analysis != nil {
		if len(doc.Analysis.KeyTopics) > 0 {
			cmd.Printf("\n  Topics:    %s\n", strings.Join(doc.Analysis.KeyTopics, ", "))
		}
		if len(doc.Analysis.Entities) > 0 {
			cmd.Printf("  Entities:  %s\n", strings.Join(doc.Analysis.Entities, ", "))
		}
		cmd.Printf("  Sentiment: %s\n", doc.Analysis.Sentiment)
		cmd.Printf("  Type:      %s\n", doc.Analysis.DocumentType)
		for _, insight := range doc.Analysis.Insights {
			cmd.Printf("  Insight:   %s\n", insight)
		}
	}

	return nil
}

func runDocumentStatus(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]

	if ingestService != nil && ingestService.InFlight(docID) {
		cmd.Printf("%s: processing\n", docID)
		return nil
	}

	doc, err := documentService.Get(context.Background(), docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("%s: %s\n", doc.ID, formatStatus(doc))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	if err := documentService.Delete(context.Background(), docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", docID)
	return nil
}

func runDocumentTranscript(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	messages, err := documentService.Transcript(context.Background(), docID)
	if err != nil {
		return fmt.Errorf("failed to get transcript: %w", err)
	}

	if len(messages) == 0 {
		cmd.Printf("No questions asked about %s yet.\n", docID)
		return nil
	}

	for _, msg := range messages {
		switch msg.Role {
		case "user":
			cmd.Printf("Q: %s\n", msg.Content)
		case "assistant":
			cmd.Printf("A: %s\n", msg.Content)
			if msg.Confidence > 0 {
				cmd.Printf("   (confidence %.2f)\n", msg.Confidence)
			}
		}
		cmd.Println()
	}

	return nil
}

// formatStatus renders the status with the failure reason attached.
func formatStatus(doc *domain.Document) string {
	if doc.Status == domain.StatusFailed && doc.StatusReason != "" {
		return fmt.Sprintf("%s (%s)", doc.Status, doc.StatusReason)
	}
	return doc.Status.String()
}
