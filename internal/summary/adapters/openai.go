package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/repolens/repolens/internal/summary"
)

// Compile-time check: *OpenAISummarizer implements summary.Summarizer.
var _ summary.Summarizer = (*OpenAISummarizer)(nil)

// OpenAISummarizer implements summary.Summarizer via the OpenAI chat
// completions API with a JSON-object response format, so the reply always
// parses into the three required fields.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer creates a summarizer. Pass baseURL="" for the real
// OpenAI API, or a custom URL for a mock server. model defaults to
// gpt-4o-mini when empty.
func NewOpenAISummarizer(apiKey, baseURL, model string) *OpenAISummarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummarizer{client: openai.NewClientWithConfig(cfg), model: model}
}

// Summarize sends the tree listing and content blob to the model and decodes
// the structured reply.
func (s *OpenAISummarizer) Summarize(ctx context.Context, repoName string, bundle summary.ContextBundle) (*summary.SummaryResult, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(repoName)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(bundle)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty response from model %s", s.model)
	}

	var result summary.SummaryResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	return &result, nil
}

func systemPrompt(repoName string) string {
	return fmt.Sprintf(`You are an expert software engineer analyzing the %s repository.
I will provide you with the directory tree structure of the project, and the raw text contents of its most important files.

Your task is to analyze this context and return a JSON object with exactly the following structure:
{
  "summary": "A human-readable description of what the project does",
  "technologies": ["List", "of", "main", "technologies", "languages", "and", "frameworks"],
  "structure": "Brief description of the project structure"
}

Respond ONLY with valid JSON.`, repoName)
}

func userPrompt(bundle summary.ContextBundle) string {
	return fmt.Sprintf("Directory Tree:\n%s\n\nKey File Contents:\n%s\n", bundle.TreeListing, bundle.ContentBlob)
}
