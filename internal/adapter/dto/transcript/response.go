package transcript

// GenerateSummaryResponse carries the generated or cached summary
type GenerateSummaryResponse struct {
	Summary string `json:"summary"`
}

// GenerateEmailResponse carries the generated or cached email body
type GenerateEmailResponse struct {
	Email string `json:"email"`
}
