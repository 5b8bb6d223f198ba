package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/forumkit/linguahub"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAI is an AI-backed batch translator. It speaks the same wrapped-batch
// protocol as the hub backend, so it can stand in behind a Cascade when the
// vendor is down or rejects a language pair.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI backend.
type OpenAIConfig struct {
	APIKey      string  // API key
	Model       string  // model to use (default: "gpt-4o-mini")
	Temperature float32 // generation temperature (default: 0.3)
	BaseURL     string  // custom base URL (optional)
}

// NewOpenAI creates a new OpenAI batch translator.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAI{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

const openaiSystemPrompt = `You are a translation engine for HTML snippets.
The user message is a sequence of lines, each of the form <p>text </p>.
Translate the text of every line from %s to %s.
Rules:
- Keep exactly one <p>...</p> block per input line, in the same order.
- Never merge, drop, or split blocks.
- Keep every <br> marker exactly where its surrounding sentence requires.
- Do not translate HTML tags, URLs, or code.
- Output only the translated lines, nothing else.`

// TranslateBatch translates one wrapped batch via a chat completion.
func (p *OpenAI) TranslateBatch(ctx context.Context, batch, from, to string) linguahub.Result {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(openaiSystemPrompt, from, to),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: batch,
			},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return linguahub.Failed(&linguahub.ProviderError{
			Message:   "chat completion failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		})
	}

	if len(resp.Choices) == 0 {
		return linguahub.Failed(&linguahub.ProviderError{
			Message:   "empty completion response",
			Retryable: true,
		})
	}

	out := resp.Choices[0].Message.Content
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return linguahub.OK(out)
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAI implements Translator
var _ Translator = (*OpenAI)(nil)
