package settings

// APISettingsResponse exposes the provider selection. API keys are never
// returned.
type APISettingsResponse struct {
	TranscriptionService string `json:"transcriptionService"`
	LLMService           string `json:"llmService"`
}
