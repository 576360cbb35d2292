package driven

// Prompt names identify the customisable LLM prompt templates.
const (
	// PromptAnalyse asks the model for the structured document analysis.
	// Takes the extracted text as its single format argument.
	PromptAnalyse = "analyse"

	// PromptAnswer asks the model to answer strictly from retrieved
	// context. Takes the context block and the question.
	PromptAnswer = "answer"

	// PromptDirectAnswer asks the model to answer from the full
	// document text when no indexed context is available. Takes the
	// document text and the question.
	PromptDirectAnswer = "answer_direct"
)

// PromptStore loads LLM prompt templates by name.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}
