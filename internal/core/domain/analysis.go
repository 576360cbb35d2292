package domain

// Analysis holds model-derived insights for a whole document. It is
// produced once during ingestion from a bounded window of the
// extracted text.
type Analysis struct {
	// Summary is a 2-3 sentence summary of the document.
	Summary string `json:"summary"`

	// KeyTopics are the main topics covered.
	KeyTopics []string `json:"key_topics"`

	// Entities are the named entities mentioned.
	Entities []string `json:"entities"`

	// Sentiment is "positive", "negative" or "neutral".
	Sentiment string `json:"sentiment"`

	// DocumentType classifies the document (report, article, letter...).
	DocumentType string `json:"document_type"`

	// Insights are notable observations about the content.
	Insights []string `json:"insights"`

	// Confidence is the model's self-reported confidence in [0,1].
	Confidence float64 `json:"confidence"`
}

// FallbackAnalysis returns the neutral analysis recorded when the
// generation model is unavailable or its output cannot be parsed.
func FallbackAnalysis(summary string) *Analysis {
	return &Analysis{
		Summary:      summary,
		KeyTopics:    []string{},
		Entities:     []string{},
		Sentiment:    "neutral",
		DocumentType: "document",
		Insights:     []string{},
		Confidence:   0,
	}
}
