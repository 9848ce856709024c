package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWith(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}}}
}

func Test_ResponseText_JoinsAllTextParts(t *testing.T) {
	text, err := responseText(responseWith(genai.Text("Match: 80%\n"), genai.Text("1. Missing skills: Kafka")))
	require.NoError(t, err)
	assert.Equal(t, "Match: 80%\n1. Missing skills: Kafka", text)
}

func Test_ResponseText_SkipsNonTextParts(t *testing.T) {
	text, err := responseText(responseWith(genai.Blob{MIMEType: "image/png"}, genai.Text("ok")))
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func Test_ResponseText_EmptyResponse(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = responseText(responseWith())
	assert.Error(t, err)
}
