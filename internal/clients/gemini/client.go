package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/maxaizer/placement-portal/internal/clients/limits"
	"google.golang.org/api/option"
)

type Model string

const (
	//Model15Flash is fastest multimodal model with great performance for diverse, repetitive tasks
	Model15Flash Model = "gemini-1.5-flash"
	//Model15Pro is next-generation model with a breakthrough 2 million context window
	Model15Pro Model = "gemini-1.5-pro"
	//Model20Flash is the next generation workhorse model with low latency
	Model20Flash Model = "gemini-2.0-flash"
)

const systemInstruction = "You are an Applicant Tracking System assistant for a campus placement cell. " +
	"Answer in plain text with short numbered sections."

type Client struct {
	limits.Limiter
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(ctx context.Context, apiKey string, model Model) (*Client, error) {

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	genModel := client.GenerativeModel(string(model))
	genModel.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))

	return &Client{client: client, model: genModel}, nil
}

// GenerateResponse makes exactly one request once the rate limits allow it.
func (c *Client) GenerateResponse(ctx context.Context, text string) (string, error) {
	if err := c.Wait(ctx); err != nil {
		return "", err
	}

	response, err := c.model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", err
	}

	return responseText(response)
}

// responseText joins every text part of the first candidate.
func responseText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response")
	}

	var b strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			b.WriteString(string(textPart))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("response has no text parts")
	}

	return b.String(), nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
