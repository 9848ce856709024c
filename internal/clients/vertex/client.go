package vertex

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/maxaizer/placement-portal/internal/clients/limits"
)

const systemInstruction = "You are an Applicant Tracking System assistant for a campus placement cell. " +
	"Answer in plain text with short numbered sections."

// Client talks to Gemini models through Vertex AI with application default credentials.
type Client struct {
	limits.Limiter
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(ctx context.Context, projectID, region, model string) (*Client, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("projectID and region cannot be empty")
	}

	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	genModel := client.GenerativeModel(model)
	genModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &Client{client: client, model: genModel}, nil
}

func (c *Client) GenerateResponse(ctx context.Context, text string) (string, error) {
	if err := c.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
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
