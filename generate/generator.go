// Package generate builds one model request per submission and parses
// the strict-JSON reply into the generated-assets payload.
package generate

import (
	"context"
	"os"
)

// Upload carries an uploaded media file through the pipeline.
type Upload struct {
	Name string
	MIME string
	Data []byte
}

// Request is one fully assembled model call: the instruction, the source
// reference, optional extracted text, and optional inline file bytes.
type Request struct {
	Instruction string
	Source      string
	Content     string  // readable text for blog inputs
	File        *Upload // inline media for uploads
}

// Generator abstracts the external generative model: exactly one request
// in, one JSON document (or error) out. Implementations must not retry.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
	ModelName() string
}

// NewDefaultGenerator returns a generator if one is configured via env.
// Gemini is preferred when GEMINI_API_KEY is set; Cohere is used when
// COHERE_API_KEY is set. Returns nil when neither is configured.
func NewDefaultGenerator() Generator {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return NewGeminiGenerator(key, os.Getenv("GEMINI_MODEL"))
	}
	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		return NewCohereGenerator(key, os.Getenv("COHERE_MODEL"))
	}
	return nil
}
