// Package extractors provides the text extractor registry.
//
// Extractors convert raw file bytes into plain text. The registry
// dispatches on file extension and declared media type, walking
// candidates in priority order and finishing with a best-effort UTF-8
// decode. Extraction never fails from the caller's point of view:
// total failure yields an empty string.
//
// Format extractors live in subpackages (pdf, docx, plaintext).
package extractors
