package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Transcript is the derived-artifact record for exactly one meeting.
// It is inserted atomically once transcription and extraction both finish;
// the cached summary and email columns are filled lazily by the insight
// generators.
type Transcript struct {
	ID        uuid.UUID                    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID                    `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex"`
	FullText  string                       `json:"full_text" gorm:"type:text"`
	HardFacts datatypes.JSONSlice[string]  `json:"hard_facts" gorm:"type:jsonb"`
	SoftFacts datatypes.JSONSlice[string]  `json:"soft_facts" gorm:"type:jsonb"`
	Summary   string                       `json:"summary,omitempty" gorm:"type:text"`
	// EmailContent caches the generated follow-up email.
	EmailContent string    `json:"email_content,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a transcript for a meeting with normalized fact lists.
func NewTranscript(meetingID uuid.UUID, fullText string, hardFacts, softFacts []string) *Transcript {
	if hardFacts == nil {
		hardFacts = []string{}
	}
	if softFacts == nil {
		softFacts = []string{}
	}
	return &Transcript{
		ID:        uuid.New(),
		MeetingID: meetingID,
		FullText:  fullText,
		HardFacts: datatypes.NewJSONSlice(hardFacts),
		SoftFacts: datatypes.NewJSONSlice(softFacts),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
