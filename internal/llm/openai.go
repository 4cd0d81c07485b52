package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/logger"
)

// OpenAIClient calls the hosted Responses API.
type OpenAIClient struct {
	client          openai.Client
	model           string
	maxOutputTokens int64
	log             *logger.Logger
}

func NewOpenAIClient(cfg config.LLMConfig, log *logger.Logger) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.GatewayURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.GatewayURL))
	}
	return &OpenAIClient{
		client:          openai.NewClient(opts...),
		model:           cfg.Model,
		maxOutputTokens: cfg.MaxOutputTokens,
		log:             log.Component("llm_openai"),
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(c.maxOutputTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			c.log.WithField("http_status", apiErr.StatusCode).WithError(err).Error("openai request failed")
		} else {
			c.log.WithError(err).Error("openai request failed")
		}
		return "", apperror.ModelInvocation(err)
	}

	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		return "", apperror.ModelInvocation(errors.New("openai response has no output text"))
	}
	return text, nil
}
