package openai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// Client wraps the OpenAI API for report narration. It consumes finished
// reports and produces prose; no analysis happens here.
type Client struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates a new OpenAI narration client.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = openai.GPT4
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: log.With().Str("component", "openai_client").Logger(),
	}
}

// GenerateCompletion sends a prompt and returns the completion text.
func (c *Client) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug().Int("prompt_len", len(prompt)).Msg("Sending prompt to OpenAI")

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("OpenAI API error")
		return "", err
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn().Msg("OpenAI returned empty choices")
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// NarrateReport turns a rendered funding-flow report into a short prose
// summary for end users.
func (c *Client) NarrateReport(ctx context.Context, reportText string) (string, error) {
	prompt := fmt.Sprintf(
		"The following is a funding-flow analysis of crypto spot and futures markets. "+
			"Summarize it for a trader in 3-5 sentences, plain language, no financial advice:\n\n%s",
		reportText,
	)
	return c.GenerateCompletion(ctx, prompt)
}
