package generate

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const defaultCohereModel = "command-a-03-2025"

// CohereGenerator implements Generator using the Cohere Chat API (v2)
// with a JSON response format. Cohere chat takes no inline media, so
// uploaded file bytes travel as a base64 block inside the message text;
// for serious media workloads Gemini is the provider to configure.
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator creates a Cohere-backed generator. An empty model
// selects the default.
func NewCohereGenerator(apiKey, model string) *CohereGenerator {
	if model == "" {
		model = defaultCohereModel
	}
	// Custom HTTP client forcing HTTP/1.1 to avoid HTTP/2 protocol errors
	// seen against the Cohere API.
	httpClient := &http.Client{
		Timeout: 5 * time.Minute,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereGenerator{client: client, model: model}
}

func (c *CohereGenerator) ModelName() string { return c.model }

// Generate sends exactly one chat request and returns the reply text.
func (c *CohereGenerator) Generate(ctx context.Context, req Request) ([]byte, error) {
	schemaJSON, err := json.Marshal(ResponseSchema())
	if err != nil {
		return nil, err
	}

	text := req.Instruction
	text += fmt.Sprintf("\n\nThe JSON object must conform to this schema:\n%s", schemaJSON)
	switch {
	case req.File != nil:
		text += fmt.Sprintf("\n\nAttached media (%s, base64):\n%s",
			req.File.MIME, base64.StdEncoding.EncodeToString(req.File.Data))
	case req.Content != "":
		text += extractedContentPrefix + req.Content
	default:
		text += sourceURLPrefix + req.Source
	}

	resp, err := c.client.V2.Chat(ctx, &cohere.V2ChatRequest{
		Model: c.model,
		Messages: cohere.ChatMessages{
			{
				Role: "user",
				User: &cohere.UserMessageV2{
					Content: &cohere.UserMessageV2Content{String: text},
				},
			},
		},
		ResponseFormat: &cohere.ResponseFormatV2{
			JsonObject: &cohere.JsonResponseFormatV2{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Message == nil || len(resp.Message.Content) == 0 {
		return nil, errors.New("cohere chat returned empty response")
	}

	for _, item := range resp.Message.Content {
		if item != nil && item.Text != nil && item.Text.Text != "" {
			return []byte(item.Text.Text), nil
		}
	}
	return nil, errors.New("cohere chat returned no text content")
}
