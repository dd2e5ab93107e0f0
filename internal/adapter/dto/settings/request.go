package settings

// ChangePasswordRequest carries a password change. Field names follow the
// frontend's camelCase payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// APISettingsRequest carries the provider selection and keys.
type APISettingsRequest struct {
	TranscriptionService string `json:"transcriptionService" validate:"required"`
	TranscriptionAPIKey  string `json:"transcriptionApiKey"`
	LLMService           string `json:"llmService" validate:"required"`
	LLMAPIKey            string `json:"llmApiKey"`
}
