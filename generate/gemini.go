package generate

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultGeminiModel = "gemini-2.5-pro"

// GeminiGenerator implements Generator against the Gemini REST API.
// Endpoint: POST https://generativelanguage.googleapis.com/v1beta/models/<model>:generateContent
// The request carries ordered content parts (instruction text, optional
// inline base64 media, optional source-URL text) and a generationConfig
// declaring application/json output constrained by the response schema.
type GeminiGenerator struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGeminiGenerator creates a Gemini-backed generator. An empty model
// selects the default.
func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiGenerator{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (g *GeminiGenerator) ModelName() string { return g.model }

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Generate sends exactly one request and returns the raw JSON reply text.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) ([]byte, error) {
	parts := []geminiPart{{Text: req.Instruction}}
	if req.File != nil {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MIMEType: req.File.MIME,
			Data:     base64.StdEncoding.EncodeToString(req.File.Data),
		}})
	} else if req.Content != "" {
		parts = append(parts, geminiPart{Text: extractedContentPrefix + req.Content})
	} else {
		parts = append(parts, geminiPart{Text: sourceURLPrefix + req.Source})
	}

	payload := map[string]any{
		"contents": []map[string]any{{"parts": parts}},
		"generationConfig": map[string]any{
			"response_mime_type": "application/json",
			"response_schema":    ResponseSchema(),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := g.endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", g.model)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return nil, fmt.Errorf("gemini error: status %d: %v", resp.StatusCode, errBody)
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini returned no candidates")
	}
	return []byte(parsed.Candidates[0].Content.Parts[0].Text), nil
}
