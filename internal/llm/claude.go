package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

var claudeModels = map[string]string{
	"haiku":  "claude-haiku-4-5-20251001",
	"sonnet": "claude-sonnet-4-5-20250929",
}

const (
	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
)

// ClaudeGateway implements Gateway on the Anthropic Messages API.
type ClaudeGateway struct {
	client anthropic.Client
	model  string
}

// NewClaudeGateway creates a gateway for the given model alias ("haiku" or
// "sonnet"; unknown aliases fall back to haiku). The API key is read from
// ANTHROPIC_API_KEY by the underlying client.
func NewClaudeGateway(model string) *ClaudeGateway {
	return &ClaudeGateway{
		client: anthropic.NewClient(),
		model:  model,
	}
}

func (g *ClaudeGateway) params(req Request) anthropic.MessageNewParams {
	modelID := claudeModels[g.model]
	if modelID == "" {
		modelID = claudeModels["haiku"]
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(modelID),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.System},
		}
	}
	return params
}

// Complete implements Gateway.
func (g *ClaudeGateway) Complete(ctx context.Context, req Request) (string, error) {
	message, err := g.client.Messages.New(ctx, g.params(req))
	if err != nil {
		return "", wrapProviderErr(ctx, err)
	}

	text := extractText(message)
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// StreamComplete implements Gateway.
func (g *ClaudeGateway) StreamComplete(ctx context.Context, req Request, onDelta func(string)) (string, error) {
	stream := g.client.Messages.NewStreaming(ctx, g.params(req))
	defer stream.Close()

	var full strings.Builder
	for stream.Next() {
		event := stream.Current()
		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := eventVariant.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
				full.WriteString(delta.Text)
				if onDelta != nil {
					onDelta(delta.Text)
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return "", wrapProviderErr(ctx, err)
	}

	text := full.String()
	if text == "" {
		return "", fmt.Errorf("empty stream from model")
	}
	return text, nil
}

// wrapProviderErr maps a deadline hit to ErrTimeout so callers can classify
// it without knowing the provider SDK's error shapes.
func wrapProviderErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("provider error: %w", err)
}

func extractText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}
