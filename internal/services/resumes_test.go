package services

import (
	"context"
	"testing"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/repositories"
	"github.com/maxaizer/placement-portal/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	files map[string][]byte
}

func (m *memoryStore) Save(_ context.Context, key string, data []byte) error {
	m.files[key] = data
	return nil
}

func (m *memoryStore) Load(_ context.Context, key string) ([]byte, error) {
	data, ok := m.files[key]
	if !ok {
		return nil, apperr.NotFound("Resume not found")
	}
	return data, nil
}

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, req resume.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockAnalyzer) AnalyzeDocument(ctx context.Context, data []byte, jobDescription string,
	analysisType resume.AnalysisType) (string, error) {
	args := m.Called(ctx, data, jobDescription, analysisType)
	return args.String(0), args.Error(1)
}

func newResumesService(t *testing.T) (*ResumesService, *memoryStore, *mockAnalyzer) {
	env := newTestEnv(t)
	store := &memoryStore{files: map[string][]byte{}}
	analyzer := &mockAnalyzer{}
	profiles := repositories.NewProfilesRepository(env.dbCtx.DB)
	service := NewResumesService(profiles, store, analyzer, func(userID string) string {
		return "resumes/" + userID + ".pdf"
	}, 1)
	return service, store, analyzer
}

func Test_Resumes_UploadLinksProfile(t *testing.T) {
	service, store, _ := newResumesService(t)

	profile, err := service.Upload(context.Background(), studentID, []byte("%PDF-1.7 content"))
	require.NoError(t, err)
	assert.Equal(t, "resumes/student-1.pdf", profile.ResumeKey)
	assert.Equal(t, []byte("%PDF-1.7 content"), store.files["resumes/student-1.pdf"])
}

func Test_Resumes_UploadRejectsNonPDF(t *testing.T) {
	service, _, _ := newResumesService(t)

	_, err := service.Upload(context.Background(), studentID, []byte("<html>"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = service.Upload(context.Background(), studentID, append([]byte("%PDF"), make([]byte, 1<<20)...))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = service.Upload(context.Background(), "", []byte("%PDF"))
	assert.EqualError(t, err, "Not authenticated")
}

func Test_Resumes_AnalyzeByURL(t *testing.T) {
	service, _, analyzer := newResumesService(t)
	analyzer.On("Analyze", mock.Anything, resume.Request{
		ResumeURL:      "https://files.example.com/cv.pdf",
		JobDescription: "Go developer",
		AnalysisType:   resume.AnalysisDetailed,
	}).Return("Strong match", nil)

	result, err := service.Analyze(context.Background(), studentID, AnalyzeInput{
		ResumeURL: "https://files.example.com/cv.pdf", JobDescription: "Go developer", AnalysisType: "detailed"})
	require.NoError(t, err)
	assert.Equal(t, "Strong match", result)
	analyzer.AssertExpectations(t)
}

func Test_Resumes_AnalyzeStoredResume(t *testing.T) {
	service, _, analyzer := newResumesService(t)
	ctx := context.Background()

	_, err := service.Analyze(ctx, studentID, AnalyzeInput{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = service.Upload(ctx, studentID, []byte("%PDF-1.7 stored"))
	require.NoError(t, err)

	analyzer.On("AnalyzeDocument", mock.Anything, []byte("%PDF-1.7 stored"), "", resume.AnalysisPercentage).
		Return("General review", nil)

	result, err := service.Analyze(ctx, studentID, AnalyzeInput{})
	require.NoError(t, err)
	assert.Equal(t, "General review", result)
}

func Test_Resumes_AnalyzeValidatesType(t *testing.T) {
	service, _, _ := newResumesService(t)

	_, err := service.Analyze(context.Background(), studentID, AnalyzeInput{ResumeURL: "https://x/cv.pdf", AnalysisType: "brief"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
