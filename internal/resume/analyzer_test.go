package resume

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	data []byte
	err  error
}

func (f fakeFetcher) Fetch(context.Context, string) ([]byte, error) {
	return f.data, f.err
}

type recordingAIClient struct {
	prompts  []string
	response string
	err      error
}

func (c *recordingAIClient) GenerateResponse(_ context.Context, request string) (string, error) {
	c.prompts = append(c.prompts, request)
	return c.response, c.err
}

func newTestAnalyzer(doc document, ai *recordingAIClient) *Analyzer {
	return &Analyzer{
		fetcher:   fakeFetcher{data: []byte("%PDF")},
		extractor: newTestExtractor(doc, nil),
		aiClient:  ai,
	}
}

func Test_Analyzer_UnreadableResumeStillGenerates(t *testing.T) {
	ai := &recordingAIClient{response: "Score: 10"}
	analyzer := newTestAnalyzer(fakeDocument{pages: []fakePage{{text: "scan"}}}, ai)

	result, err := analyzer.Analyze(context.Background(), Request{ResumeURL: "https://x/cv.pdf", JobDescription: "Go developer"})
	require.NoError(t, err)
	assert.Equal(t, "Score: 10", result)
	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], UnreadableResumeText)
}

func Test_Analyzer_ReturnsResponseVerbatim(t *testing.T) {
	ai := &recordingAIClient{response: "  **Match: 80%**\n"}
	doc := fakeDocument{pages: []fakePage{{text: "Backend engineer with five years of Go and PostgreSQL experience"}}}

	result, err := newTestAnalyzer(doc, ai).AnalyzeDocument(context.Background(), []byte("%PDF"), "Go developer", AnalysisPercentage)
	require.NoError(t, err)
	assert.Equal(t, "  **Match: 80%**\n", result)
}

func Test_Analyzer_GenerationErrorIsWrapped(t *testing.T) {
	ai := &recordingAIClient{err: errors.New("quota exceeded")}
	doc := fakeDocument{pages: []fakePage{{text: "Backend engineer with five years of Go and PostgreSQL experience"}}}

	_, err := newTestAnalyzer(doc, ai).Analyze(context.Background(), Request{ResumeURL: "u"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindGeneration))
	assert.Equal(t, "analysis failed: quota exceeded", err.Error())
	assert.Len(t, ai.prompts, 1)
}

func Test_Analyzer_DownloadErrorStopsPipeline(t *testing.T) {
	ai := &recordingAIClient{}
	analyzer := newTestAnalyzer(fakeDocument{}, ai)
	analyzer.fetcher = fakeFetcher{err: apperr.New(apperr.KindDownload, "failed to download resume: 403 Forbidden")}

	_, err := analyzer.Analyze(context.Background(), Request{ResumeURL: "u"})
	assert.True(t, apperr.Is(err, apperr.KindDownload))
	assert.Empty(t, ai.prompts)
}

func Test_ComposePrompt_TemplateSelection(t *testing.T) {
	cases := []struct {
		name           string
		jobDescription string
		analysisType   AnalysisType
		template       string
	}{
		{"percentage with job", "Go developer", AnalysisPercentage, percentageTemplate},
		{"detailed with job", "Go developer", AnalysisDetailed, detailedTemplate},
		{"general with job", "Go developer", AnalysisGeneral, generalTemplate},
		{"detailed without job", "", AnalysisDetailed, generalTemplate},
		{"percentage without job", "   ", AnalysisPercentage, generalTemplate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prompt := composePrompt(tc.jobDescription, "resume text", tc.analysisType)
			assert.True(t, strings.HasSuffix(prompt, tc.template))
			assert.Contains(t, prompt, "Resume:\nresume text")
			if strings.TrimSpace(tc.jobDescription) == "" {
				assert.NotContains(t, prompt, "Job description:")
			} else {
				assert.True(t, strings.HasPrefix(prompt, "Job description:\nGo developer"))
			}
		})
	}
}

func Test_ToAnalysisType(t *testing.T) {
	analysisType, err := ToAnalysisType("")
	require.NoError(t, err)
	assert.Equal(t, AnalysisPercentage, analysisType)

	_, err = ToAnalysisType("brief")
	assert.Error(t, err)
}

func Test_Analyzer_DoesNotFetchInternalUrls(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	ai := &recordingAIClient{}
	analyzer := NewAnalyzer(config.ResumeConfig{PageTimeout: time.Second, LoadTimeout: time.Second,
		FetchTimeout: time.Second, MaxSizeMB: 1}, ai)

	_, err := analyzer.Analyze(context.Background(), Request{ResumeURL: server.URL + "/computeMetadata/v1/"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindDownload))
	assert.NotContains(t, apperr.PublicMessage(err), "418")
	assert.False(t, hit)
	assert.Empty(t, ai.prompts)
}
