package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/maxaizer/placement-portal/internal/resume"
	log "github.com/sirupsen/logrus"
)

type resumeStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

type resumeAnalyzer interface {
	Analyze(ctx context.Context, req resume.Request) (string, error)
	AnalyzeDocument(ctx context.Context, data []byte, jobDescription string, analysisType resume.AnalysisType) (string, error)
}

type AnalyzeInput struct {
	ResumeURL      string `json:"resumeUrl" validate:"omitempty,url"`
	JobDescription string `json:"jobDescription"`
	AnalysisType   string `json:"analysisType" validate:"omitempty,oneof=percentage detailed general"`
}

type ResumesService struct {
	accessControl
	profiles profileRepository
	store    resumeStore
	analyzer resumeAnalyzer
	newKey   func(userID string) string
	maxBytes int
}

func NewResumesService(profiles profileRepository, store resumeStore, analyzer resumeAnalyzer,
	newKey func(userID string) string, maxSizeMB int) *ResumesService {
	return &ResumesService{
		accessControl: accessControl{profiles: profiles},
		profiles:      profiles,
		store:         store,
		analyzer:      analyzer,
		newKey:        newKey,
		maxBytes:      maxSizeMB << 20,
	}
}

func (s *ResumesService) MaxBytes() int {
	return s.maxBytes
}

// Upload stores the caller's resume and links it to the profile.
func (s *ResumesService) Upload(ctx context.Context, userID string, data []byte) (*models.Profile, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	if len(data) > s.maxBytes {
		return nil, apperr.Validation("resume is larger than %d MB", s.maxBytes>>20)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, apperr.Validation("resume must be a PDF file")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.NotFound("Profile not found")
	}

	key := s.newKey(userID)
	if err = s.store.Save(ctx, key, data); err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	profile.ResumeKey = key
	if err = s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	log.Infof("resume %v uploaded by %v", key, userID)
	return profile, nil
}

// Analyze runs the ATS analysis on the resume at the given url, or on the caller's stored resume.
func (s *ResumesService) Analyze(ctx context.Context, userID string, input AnalyzeInput) (string, error) {
	if err := s.authenticate(userID); err != nil {
		return "", err
	}
	if err := validateInput(input); err != nil {
		return "", err
	}

	analysisType, err := resume.ToAnalysisType(input.AnalysisType)
	if err != nil {
		return "", apperr.Validation("%s", err.Error())
	}

	if input.ResumeURL != "" {
		return s.analyzer.Analyze(ctx, resume.Request{
			ResumeURL:      input.ResumeURL,
			JobDescription: input.JobDescription,
			AnalysisType:   analysisType,
		})
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile == nil || profile.ResumeKey == "" {
		return "", apperr.Validation("resumeUrl is required when no resume is uploaded")
	}

	data, err := s.store.Load(ctx, profile.ResumeKey)
	if err != nil {
		return "", err
	}
	return s.analyzer.AnalyzeDocument(ctx, data, input.JobDescription, analysisType)
}
