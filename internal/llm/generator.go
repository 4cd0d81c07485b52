package llm

import (
	"context"
	"fmt"

	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/logger"
)

// Generator is the boundary to the external generative model: text in,
// text out. Implementations return errors matching apperror.ErrModelInvocation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// New builds the generator selected by LLM_PROVIDER. It fails fast with a
// MissingCredential error when the provider needs a key that is not set.
func New(cfg config.LLMConfig, log *logger.Logger) (Generator, error) {
	if log == nil {
		log = logger.Discard()
	}
	switch cfg.Provider {
	case "mock":
		return NewMockClient(), nil
	case "gateway":
		if cfg.APIKey == "" {
			return nil, apperror.MissingCredential("LLM_API_KEY")
		}
		return NewGatewayClient(cfg, log), nil
	case "openai", "":
		if cfg.APIKey == "" {
			return nil, apperror.MissingCredential("LLM_API_KEY")
		}
		return NewOpenAIClient(cfg, log), nil
	default:
		return nil, apperror.InvalidArgument(fmt.Sprintf("unknown LLM provider %q", cfg.Provider))
	}
}
