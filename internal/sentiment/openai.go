package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI scores polarity with a chat-completion model. The model is asked
// for a bare number; anything unparsable is an error, never a guess.
type OpenAI struct {
	client *openai.Client
	model  string
}

const openaiSystemPrompt = "Rate the sentiment of the user's text. " +
	"Respond with a single number between -1.0 (most negative) and 1.0 (most positive). " +
	"No words, no explanation."

func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai sentiment: api key required")
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: openai.NewClient(cfg.APIKey), model: model}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Score(ctx context.Context, text string) (float64, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens: 8,
	})
	if err != nil {
		return 0, fmt.Errorf("openai sentiment: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, errors.New("openai sentiment: empty response")
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("openai sentiment: unparsable score %q", raw)
	}
	return clamp(v), nil
}
