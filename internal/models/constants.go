package models

const (
	// SystemApplicant labels synthetic items not owned by any candidate.
	SystemApplicant = "System"

	NoDocumentsAnswer = "No relevant documents found."
	NotIndexedAnswer  = "No CVs have been indexed yet. Load and index documents first."
)

var (
	AnswerPromptTemplate = `You are an expert HR assistant helping recruiters find the right candidates. Use the following CV context to answer recruitment-related questions.

Context: %s

Question: %s

Instructions:
- Focus on recruitment-relevant information (skills, experience, education, achievements)
- When comparing candidates, be specific about their qualifications
- If asking about specific technologies/skills, mention proficiency levels when available
- Include years of experience, job titles, and company names when relevant
- If information is not available, clearly state that
- Provide actionable insights for recruitment decisions
- Format output in bullet points for readability

Answer:
`

	// DefaultCountKeywords and DefaultCVKeywords drive count-query
	// classification; a query must hit both lists to classify as a count.
	DefaultCountKeywords = []string{"how many", "count", "number of", "total", "how much"}
	DefaultCVKeywords    = []string{"cv", "cvs", "resume", "resumes", "applicant", "applicants", "candidate", "candidates"}
)
