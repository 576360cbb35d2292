// Command doclens is a document question-answering tool. It ingests
// documents, analyses them and answers natural-language questions
// grounded in their content.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doclens/doclens/internal/adapters/driven/ai"
	"github.com/doclens/doclens/internal/adapters/driven/blob/fs"
	"github.com/doclens/doclens/internal/adapters/driven/config/file"
	"github.com/doclens/doclens/internal/adapters/driven/storage/sqlite"
	"github.com/doclens/doclens/internal/adapters/driving/cli"
	"github.com/doclens/doclens/internal/chunker"
	"github.com/doclens/doclens/internal/core/services"
	"github.com/doclens/doclens/internal/extractors"
	"github.com/doclens/doclens/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "doclens: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	validator := ai.NewConfigValidator()
	settingsService := services.NewSettingsService(configStore, validator)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	defer store.Close()

	blobDir := ""
	if settings.Storage.DataDir != "" {
		blobDir = filepath.Join(settings.Storage.DataDir, "blobs")
	}
	blobStore, err := fs.NewBlobStore(blobDir)
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	aiResult := ai.Initialise(context.Background(), ai.Settings{
		Embedding:   settings.Embedding,
		LLM:         settings.LLM,
		VectorIndex: settings.VectorIndex,
	})
	defer aiResult.Close()
	for _, warning := range aiResult.Warnings {
		logger.Warn("%s", warning)
	}

	registry := extractors.NewDefaultRegistry()
	splitter := chunker.New()

	ingestService := services.NewIngestService(
		store.DocumentStore(),
		blobStore,
		registry,
		splitter,
		promptStore,
		aiResult.EmbeddingService,
		aiResult.LLMService,
		aiResult.VectorIndex,
	)
	queryService := services.NewQueryService(
		store.DocumentStore(),
		store.TranscriptStore(),
		blobStore,
		registry,
		splitter,
		promptStore,
		aiResult.EmbeddingService,
		aiResult.LLMService,
		aiResult.VectorIndex,
	)
	documentService := services.NewDocumentService(
		store.DocumentStore(),
		store.TranscriptStore(),
		blobStore,
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ingest:   ingestService,
		Query:    queryService,
		Document: documentService,
		Settings: settingsService,
	})
	cli.Execute()
	return nil
}
