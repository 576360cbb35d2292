// Package tui provides an interactive chat interface for asking
// questions about a single document. It implements a driving adapter
// following hexagonal architecture principles.
package tui

import (
	"github.com/doclens/doclens/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the chat TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions about a document.
	Query driving.QueryService

	// Document loads document metadata and transcripts.
	Document driving.DocumentService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(query driving.QueryService, document driving.DocumentService) *Ports {
	return &Ports{
		Query:    query,
		Document: document,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
