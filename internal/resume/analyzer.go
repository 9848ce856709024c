package resume

import (
	"context"
	"time"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/config"
	"github.com/maxaizer/placement-portal/internal/logger"
	"github.com/maxaizer/placement-portal/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

type documentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type textExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

type Request struct {
	ResumeURL      string
	JobDescription string
	AnalysisType   AnalysisType
}

// Analyzer runs fetch, extract, compose and generate once each. Nothing is retried.
type Analyzer struct {
	fetcher   documentFetcher
	extractor textExtractor
	aiClient  aiClient
}

func NewAnalyzer(cfg config.ResumeConfig, aiClient aiClient) *Analyzer {
	return &Analyzer{
		fetcher:   NewFetcher(cfg.FetchTimeout, cfg.MaxSizeMB),
		extractor: NewExtractor(cfg.PageTimeout, cfg.LoadTimeout),
		aiClient:  aiClient,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	data, err := a.fetcher.Fetch(ctx, req.ResumeURL)
	metrics.ResumeStepDuration.WithLabelValues("fetch").Observe(time.Since(start).Seconds())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Warnf("failed to fetch resume: %v", err)
		return "", err
	}

	return a.AnalyzeDocument(ctx, data, req.JobDescription, req.AnalysisType)
}

// AnalyzeDocument analyzes a resume that is already in memory.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, data []byte, jobDescription string,
	analysisType AnalysisType) (string, error) {

	start := time.Now()
	text, err := a.extractor.Extract(ctx, data)
	metrics.ResumeStepDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypePdf).Warnf("failed to extract resume text: %v", err)
		return "", err
	}

	prompt := composePrompt(jobDescription, text, analysisType)

	start = time.Now()
	response, err := a.aiClient.GenerateResponse(ctx, prompt)
	metrics.ResumeStepDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).Errorf("resume analysis failed: %v", err)
		return "", apperr.Wrap(apperr.KindGeneration, err, "analysis failed")
	}

	return response, nil
}
