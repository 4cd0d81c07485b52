package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"interview-insights-go/internal/apperror"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/logger"
)

// GatewayClient talks to an OpenAI-compatible chat-completions endpoint.
type GatewayClient struct {
	url        string
	apiKey     string
	model      string
	maxRetries uint64
	http       *http.Client
	log        *logger.Logger
}

func NewGatewayClient(cfg config.LLMConfig, log *logger.Logger) *GatewayClient {
	return &GatewayClient{
		url:        cfg.GatewayURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxRetries: uint64(cfg.MaxRetries),
		http:       &http.Client{Timeout: cfg.Timeout},
		log:        log.Component("llm_gateway"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt as a single user message and returns
// choices[0].message.content untouched. Deadlines come from ctx.
func (c *GatewayClient) Generate(ctx context.Context, prompt string) (string, error) {
	data, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.0,
	})
	if err != nil {
		return "", apperror.ModelInvocation(err)
	}
	c.log.WithField("payload_len", len(data)).Debug("llm request")

	var content string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			c.log.WithError(err).Warn("llm request failed")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		c.log.WithField("http_status", resp.StatusCode).Debug("llm response received")

		if resp.StatusCode >= 400 {
			statusErr := fmt.Errorf("llm gateway returned %d: %s", resp.StatusCode, truncate(string(body), 256))
			// Client errors are permanent except rate limiting.
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}

		text, err := contentFromChoices(body)
		if err != nil {
			return backoff.Permanent(err)
		}
		content = text
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		c.log.WithError(err).Error("llm generate failed")
		return "", apperror.ModelInvocation(err)
	}
	return content, nil
}

// contentFromChoices reads openai-style choices[0].message.content.
func contentFromChoices(body []byte) (string, error) {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode llm response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("llm response has no choices")
	}
	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", errors.New("llm response content is empty")
	}
	return content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
