package utils

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiCompletionClient implements CompletionClientInterface with the Gemini
// API. With search enabled the model may consult Google Search before
// answering, which is what grounds opening hours and ticket prices.
type GeminiCompletionClient struct {
	models        geminiModels
	model         string
	searchEnabled bool
	cfg           CompletionConfig
}

// geminiModels is the slice of genai.Models we use, so tests can fake it.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGeminiCompletionClient creates a new Gemini client
func NewGeminiCompletionClient(ctx context.Context, cfg CompletionConfig) (*GeminiCompletionClient, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newGeminiCompletionClient(client.Models, cfg), nil
}

func newGeminiCompletionClient(models geminiModels, cfg CompletionConfig) *GeminiCompletionClient {
	return &GeminiCompletionClient{
		models:        models,
		model:         cfg.Model,
		searchEnabled: cfg.SearchEnabled,
		cfg:           cfg,
	}
}

func (c *GeminiCompletionClient) Provider() string { return "gemini" }

// Complete sends the prompt as a single user turn. The response MIME type is
// left as text: Gemini refuses JSON mode when the search tool is attached, so
// the caller extracts the JSON itself.
func (c *GeminiCompletionClient) Complete(ctx context.Context, prompt string) (Completion, error) {
	config := &genai.GenerateContentConfig{}
	if c.searchEnabled {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	callCtx, cancel := withOptionalTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.models.GenerateContent(callCtx, c.model, genai.Text(prompt), config)
	if err != nil {
		return Completion{}, NewGenerationError("the itinerary service could not be reached", err)
	}
	if resp == nil {
		return Completion{}, NewGenerationError("the itinerary service returned no response", nil)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		reason := "the itinerary service returned an empty response"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = fmt.Sprintf("the itinerary service declined the request (%s)", resp.PromptFeedback.BlockReason)
		}
		return Completion{}, NewGenerationError(reason, nil)
	}

	return Completion{Text: text, Sources: groundingSources(resp)}, nil
}

// groundingSources collects the distinct web URIs the search tool cited.
func groundingSources(resp *genai.GenerateContentResponse) []string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	seen := make(map[string]bool)
	var sources []string
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		if seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		sources = append(sources, chunk.Web.URI)
	}
	return sources
}
