package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
)

// TranscriptRepository defines the interface for transcript data access.
// Transcript installation happens inside the meeting status transaction,
// see MeetingRepository.CompleteWithTranscript.
type TranscriptRepository interface {
	// FindByID finds a transcript by ID (nil when not found)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)

	// FindByMeetingID finds the transcript owned by a meeting (nil when none)
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error)

	// UpdateContent overwrites text and fact lists (manual correction path)
	UpdateContent(ctx context.Context, id uuid.UUID, fullText string, hardFacts, softFacts []string) (*entities.Transcript, error)

	// CacheSummary persists a generated summary into the cached column
	CacheSummary(ctx context.Context, id uuid.UUID, summary string) error

	// CacheEmail persists a generated follow-up email into the cached column
	CacheEmail(ctx context.Context, id uuid.UUID, email string) error
}
