package langchain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/aiosion/ai"
	"github.com/poiesic/aiosion/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/huggingface"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator on top of a langchaingo model.
type Generator struct {
	name   core.ProviderName
	model  string
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(name core.ProviderName, model string, client llms.Model) *Generator {
	return &Generator{
		name:   name,
		model:  model,
		client: client,
		logger: slog.Default().With("component", "langchain-generator", "provider", string(name)),
	}
}

// NewGenerator builds the langchaingo client for the named provider.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(ctx context.Context, name core.ProviderName, model, apiKey string) (ai.Generator, error) {
	if !name.IsValid() {
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedProvider, name)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%s: %w", name, ai.ErrMissingAPIKey)
	}

	var (
		client llms.Model
		err    error
	)
	switch name {
	case core.ProviderOpenAI:
		client, err = openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	case core.ProviderAnthropic:
		client, err = anthropic.New(anthropic.WithToken(apiKey), anthropic.WithModel(model))
	case core.ProviderGoogle:
		client, err = googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(model))
	case core.ProviderHuggingFace:
		client, err = huggingface.New(huggingface.WithToken(apiKey), huggingface.WithModel(model))
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", name, err)
	}
	return newGenerator(name, model, client), nil
}

// Name returns the provider name.
func (g *Generator) Name() core.ProviderName {
	return g.name
}

// Model returns the model identifier.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends prompt to the provider and returns the trimmed first choice.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("generating", "model", g.model, "length", len(prompt))

	response, err := g.client.GenerateContent(ctx, g.frame(prompt), g.callOptions()...)
	if err != nil {
		g.logger.Debug("provider call failed", "err", err)
		return "", fmt.Errorf("%s: %w", g.name, err)
	}
	if response == nil || len(response.Choices) < 1 || response.Choices[0] == nil {
		return "", fmt.Errorf("%s: %w", g.name, ai.ErrEmptyResponse)
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// frame shapes the prompt the way each provider expects it.
func (g *Generator) frame(prompt string) []llms.MessageContent {
	switch g.name {
	case core.ProviderAnthropic:
		return []llms.MessageContent{
			{
				Role:  llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{llms.TextPart(prompt)},
			},
		}
	case core.ProviderHuggingFace:
		// The text-generation endpoint reads the first text part verbatim.
		return []llms.MessageContent{
			{
				Role:  llms.ChatMessageTypeGeneric,
				Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
			},
		}
	default:
		return []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}
	}
}

func (g *Generator) callOptions() []llms.CallOption {
	opts := []llms.CallOption{llms.WithModel(g.model)}
	if g.name == core.ProviderHuggingFace {
		return append(opts, llms.WithMaxLength(ai.MaxOutputTokens))
	}
	return append(opts, llms.WithMaxTokens(ai.MaxOutputTokens))
}

// Close releases the underlying client when it holds resources.
func (g *Generator) Close() error {
	if c, ok := g.client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
