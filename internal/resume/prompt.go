package resume

import (
	"fmt"
	"strings"
)

type AnalysisType string

const (
	AnalysisPercentage AnalysisType = "percentage"
	AnalysisDetailed   AnalysisType = "detailed"
	AnalysisGeneral    AnalysisType = "general"
)

func ToAnalysisType(s string) (AnalysisType, error) {
	switch s {
	case "", string(AnalysisPercentage):
		return AnalysisPercentage, nil
	case string(AnalysisDetailed):
		return AnalysisDetailed, nil
	case string(AnalysisGeneral):
		return AnalysisGeneral, nil
	default:
		return "", fmt.Errorf("unknown analysis type %q", s)
	}
}

const percentageTemplate = `You are an experienced Applicant Tracking System (ATS) with deep knowledge of hiring for technical and non-technical roles.
Evaluate the resume against the job description above.
Respond with:
1. Match percentage: a single number from 0 to 100.
2. Missing keywords: the important skills and terms from the job description that the resume lacks.
3. Profile summary: three to five sentences on how well the candidate fits the role.`

const detailedTemplate = `You are an experienced technical recruiter reviewing a resume for the job description above.
Provide a detailed evaluation with these sections:
1. Overall fit: a short verdict and a match percentage from 0 to 100.
2. Strengths: the experience and skills that match the role.
3. Gaps: required qualifications that are missing or weak.
4. Keywords: job description keywords found and not found in the resume.
5. Recommendations: concrete edits that would improve the resume for this role.`

const generalTemplate = `You are an experienced career coach and Applicant Tracking System (ATS) expert.
Review the resume above without a specific job in mind.
Provide:
1. ATS readiness score from 0 to 100 with a one line justification.
2. Strengths of the resume.
3. Weaknesses in content, structure or formatting that hurt ATS parsing.
4. Suggested roles the candidate is a good fit for.
5. Concrete improvements, most important first.`

// composePrompt picks the general template whenever the job description is empty, whatever type was asked for.
func composePrompt(jobDescription, resumeText string, analysisType AnalysisType) string {
	jobDescription = strings.TrimSpace(jobDescription)

	template := generalTemplate
	if jobDescription != "" {
		switch analysisType {
		case AnalysisDetailed:
			template = detailedTemplate
		case AnalysisPercentage:
			template = percentageTemplate
		}
	}

	var b strings.Builder
	if jobDescription != "" {
		b.WriteString("Job description:\n")
		b.WriteString(jobDescription)
		b.WriteString("\n\n")
	}
	b.WriteString("Resume:\n")
	b.WriteString(resumeText)
	b.WriteString("\n\n")
	b.WriteString(template)
	return b.String()
}
