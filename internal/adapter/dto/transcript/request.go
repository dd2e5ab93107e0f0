package transcript

// UpdateTranscriptRequest overwrites the transcript text and facts
// after a manual correction in the UI.
type UpdateTranscriptRequest struct {
	FullText  string   `json:"full_text" validate:"required"`
	HardFacts []string `json:"hard_facts"`
	SoftFacts []string `json:"soft_facts"`
}

// GenerateSummaryRequest asks for a meeting summary. Field names match
// the frontend payload.
type GenerateSummaryRequest struct {
	Transcript   string `json:"transcript"`
	MeetingTitle string `json:"meetingTitle"`
	TranscriptID string `json:"transcriptId" validate:"omitempty,uuid"`
}

// GenerateEmailRequest asks for a follow-up email draft.
type GenerateEmailRequest struct {
	Transcript    string   `json:"transcript"`
	HardFacts     []string `json:"hardFacts"`
	SoftFacts     []string `json:"softFacts"`
	MeetingTitle  string   `json:"meetingTitle"`
	MeetingDate   string   `json:"meetingDate"`
	ClientName    string   `json:"clientName"`
	ClientCompany string   `json:"clientCompany"`
	UserName      string   `json:"userName"`
	UserCompany   string   `json:"userCompany"`
	TranscriptID  string   `json:"transcriptId" validate:"omitempty,uuid"`
}
