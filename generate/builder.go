package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"echochamber/extract"
	"echochamber/types"
)

// ErrGenerationFailed is the single user-facing generation error. Every
// failure of the external call collapses into it: network errors,
// malformed JSON, schema violations, model-reported errors. The cause is
// wrapped for the log, never for the user.
var ErrGenerationFailed = errors.New("failed to generate content, please try again")

// Builder assembles one model request per submission and parses the
// reply. It performs no retry and yields no partial result.
type Builder struct {
	gen Generator

	// extractText is swappable in tests; defaults to readability extraction.
	extractText func(url string) (string, error)
}

// NewBuilder constructs a Builder over the given generator.
func NewBuilder(gen Generator) *Builder {
	return &Builder{gen: gen, extractText: extract.ReadableText}
}

// BuildAndSend performs one generation call: build the instruction for
// the input type, attach the file bytes or extracted blog text, send,
// parse strictly, validate, and stamp the caller-known inputType and
// source over whatever the model returned. All-or-nothing.
func (b *Builder) BuildAndSend(ctx context.Context, inputType types.InputType, source string, file *Upload) (*types.GeneratedAssets, error) {
	req := Request{
		Instruction: fmt.Sprintf(basePrompt, inputType),
		Source:      source,
		File:        file,
	}

	if file == nil && inputType == types.InputBlog {
		text, err := b.extractText(source)
		if err != nil {
			return nil, b.fail("extract %s: %v", source, err)
		}
		req.Content = text
	}

	raw, err := b.gen.Generate(ctx, req)
	if err != nil {
		return nil, b.fail("model call: %v", err)
	}

	assets, err := parseAssets(raw)
	if err != nil {
		return nil, b.fail("parse response: %v", err)
	}

	// The model never supplies these; the caller's values always win.
	assets.InputType = inputType
	assets.Source = source
	return assets, nil
}

// fail logs the cause and returns the one generic user-facing error.
func (b *Builder) fail(format string, args ...any) error {
	log.Printf("generation failed: "+format, args...)
	return ErrGenerationFailed
}

// parseAssets decodes the model reply against the declared schema
// version. Unknown fields mean the model drifted from the contract and
// the whole reply is rejected.
func parseAssets(raw []byte) (*types.GeneratedAssets, error) {
	dec := json.NewDecoder(bytes.NewReader(stripFences(raw)))
	dec.DisallowUnknownFields()

	var assets types.GeneratedAssets
	if err := dec.Decode(&assets); err != nil {
		return nil, err
	}
	if err := checkRequired(&assets); err != nil {
		return nil, err
	}
	if err := assets.Validate(); err != nil {
		return nil, err
	}
	return &assets, nil
}

// stripFences removes markdown code fences some models wrap around JSON.
func stripFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return []byte(strings.TrimSpace(s))
}
