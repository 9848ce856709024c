package langchain

import (
	"context"
	"fmt"

	"github.com/maxaizer/placement-portal/internal/clients/limits"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

type Client struct {
	limits.Limiter
	model llms.Model
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create langchain model: %w", err)
	}

	return NewClientWithModel(llm), nil
}

func NewClientWithModel(model llms.Model) *Client {
	return &Client{model: model}
}

func (c *Client) GenerateResponse(ctx context.Context, text string) (string, error) {
	if err := c.Wait(ctx); err != nil {
		return "", err
	}
	return llms.GenerateFromSinglePrompt(ctx, c.model, text)
}

func (c *Client) Close() error {
	return nil
}
