package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus is the processing state of a meeting's audio pipeline
type MeetingStatus string

const (
	// MeetingStatusPending means no audio is attached and no transcript exists
	MeetingStatusPending MeetingStatus = "pending"
	// MeetingStatusProcessing means audio is attached and the pipeline is running
	MeetingStatusProcessing MeetingStatus = "processing"
	// MeetingStatusCompleted means a transcript was successfully persisted
	MeetingStatusCompleted MeetingStatus = "completed"
	// MeetingStatusFailed means the pipeline raised an unrecovered error
	MeetingStatusFailed MeetingStatus = "failed"
)

// CanStartProcessing reports whether a fresh audio upload may move this
// status into processing. Every state accepts a new upload: pending gets its
// first run, failed retries, completed redoes the transcript.
func (s MeetingStatus) CanStartProcessing() bool {
	switch s {
	case MeetingStatusPending, MeetingStatusProcessing, MeetingStatusCompleted, MeetingStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the pipeline has finished for the current audio.
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusFailed
}

// Meeting is one recorded advisory session
type Meeting struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClientID      uuid.UUID     `json:"client_id" gorm:"type:uuid;not null;index"`
	Title         string        `json:"title" gorm:"type:varchar(255)"`
	MeetingDate   time.Time     `json:"meeting_date"`
	Participants  string        `json:"participants" gorm:"type:text"`
	AudioFilePath string        `json:"audio_file_path,omitempty" gorm:"type:varchar(512)"`
	Status        MeetingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	// FailureReason is set when the pipeline fails and cleared on re-upload.
	FailureReason string `json:"failure_reason,omitempty" gorm:"type:text"`
	// PipelineGeneration increments on every upload; a pipeline run may only
	// write terminal status for its own generation.
	PipelineGeneration int       `json:"-" gorm:"not null;default:0"`
	CreatedBy          uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new meeting owned by the given client
func NewMeeting(clientID, createdBy uuid.UUID, title string, meetingDate time.Time) *Meeting {
	return &Meeting{
		ID:          uuid.New(),
		ClientID:    clientID,
		Title:       title,
		MeetingDate: meetingDate,
		Status:      MeetingStatusPending,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}
