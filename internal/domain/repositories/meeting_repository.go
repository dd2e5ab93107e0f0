package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access. Status
// transitions are compare-and-swap writes so the pipeline's state machine is
// enforced at the storage layer, not by callers.
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID finds a meeting by ID (nil when not found)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// List returns all meetings newest-first
	List(ctx context.Context) ([]*entities.Meeting, error)

	// ListByClientID returns a client's meetings newest-first
	ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*entities.Meeting, error)

	// Update overwrites meeting fields edited through the CRUD surface
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete removes the meeting; the transcript row goes with it
	Delete(ctx context.Context, id uuid.UUID) error

	// BeginProcessing attaches audio, moves the meeting into processing,
	// clears any failure reason and bumps the pipeline generation. Returns
	// the new generation the caller's run must present on completion.
	BeginProcessing(ctx context.Context, id uuid.UUID, audioPath string) (int, error)

	// CompleteWithTranscript moves processing -> completed for the given
	// generation and installs the transcript as the meeting's only one, all
	// in one transaction. Returns false without writing anything when a
	// newer upload superseded this run.
	CompleteWithTranscript(ctx context.Context, id uuid.UUID, generation int, transcript *entities.Transcript) (bool, error)

	// MarkFailed moves processing -> failed with a reason, generation-guarded
	// like CompleteWithTranscript.
	MarkFailed(ctx context.Context, id uuid.UUID, generation int, reason string) (bool, error)

	// FindStuckProcessing returns meetings sitting in processing since before
	// the cutoff (watchdog sweep input).
	FindStuckProcessing(ctx context.Context, before time.Time) ([]*entities.Meeting, error)
}
