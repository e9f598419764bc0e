package utils

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const openAISearchModel = "gpt-4o-mini-search-preview"

type openAIChat interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAICompletionClient implements CompletionClientInterface with chat
// completions. Chat completions take no search tool; search is done by the
// *-search-preview models, so enabling search picks one of those.
type OpenAICompletionClient struct {
	client openAIChat
	model  string
	cfg    CompletionConfig
}

func NewOpenAICompletionClient(cfg CompletionConfig) *OpenAICompletionClient {
	return newOpenAICompletionClient(openai.NewClient(cfg.APIKey), cfg)
}

func newOpenAICompletionClient(client openAIChat, cfg CompletionConfig) *OpenAICompletionClient {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	if cfg.SearchEnabled && !strings.Contains(model, "search") {
		model = openAISearchModel
	}
	return &OpenAICompletionClient{client: client, model: model, cfg: cfg}
}

func (c *OpenAICompletionClient) Provider() string { return "openai" }

func (c *OpenAICompletionClient) Complete(ctx context.Context, prompt string) (Completion, error) {
	callCtx, cancel := withOptionalTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return Completion{}, NewGenerationError("the itinerary service could not be reached", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return Completion{}, NewGenerationError("the itinerary service returned an empty response", nil)
	}

	return Completion{Text: resp.Choices[0].Message.Content}, nil
}
