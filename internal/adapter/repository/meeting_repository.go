package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create creates a new meeting
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by ID
func (r *MeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// List retrieves all meetings, newest first
func (r *MeetingRepository) List(ctx context.Context) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Order("meeting_date DESC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// ListByClientID retrieves all meetings for a client, newest first
func (r *MeetingRepository) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("meeting_date DESC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// Update overwrites the CRUD-editable fields of a meeting
func (r *MeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meeting.ID).
		Updates(map[string]interface{}{
			"client_id":    meeting.ClientID,
			"title":        meeting.Title,
			"meeting_date": meeting.MeetingDate,
			"participants": meeting.Participants,
			"updated_at":   time.Now(),
		}).Error
}

// Delete removes a meeting. The transcript row is removed by the ON DELETE
// CASCADE constraint.
func (r *MeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id).Error
}

// BeginProcessing attaches the audio path, moves the meeting into processing
// and bumps the pipeline generation under a row lock, so two concurrent
// uploads get distinct generations.
func (r *MeetingRepository) BeginProcessing(ctx context.Context, id uuid.UUID, audioPath string) (int, error) {
	var generation int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meeting entities.Meeting
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&meeting).Error; err != nil {
			return err
		}
		generation = meeting.PipelineGeneration + 1
		return tx.Model(&entities.Meeting{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":              entities.MeetingStatusProcessing,
				"audio_file_path":     audioPath,
				"failure_reason":      "",
				"pipeline_generation": generation,
				"updated_at":          time.Now(),
			}).Error
	})
	if err != nil {
		return 0, err
	}
	return generation, nil
}

// CompleteWithTranscript moves processing -> completed for the given
// generation and swaps in the transcript, all in one transaction. A stale
// run (superseded by a newer upload) matches no row, writes nothing and
// reports false, so its transcript never reaches the store.
func (r *MeetingRepository) CompleteWithTranscript(ctx context.Context, id uuid.UUID, generation int, transcript *entities.Transcript) (bool, error) {
	if transcript == nil {
		return false, errors.New("transcript cannot be nil")
	}
	claimed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Meeting{}).
			Where("id = ? AND status = ? AND pipeline_generation = ?",
				id, entities.MeetingStatusProcessing, generation).
			Updates(map[string]interface{}{
				"status":     entities.MeetingStatusCompleted,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("meeting_id = ?", id).
			Delete(&entities.Transcript{}).Error; err != nil {
			return err
		}
		if err := tx.Create(transcript).Error; err != nil {
			return err
		}
		claimed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return claimed, nil
}

// MarkFailed moves processing -> failed with a stored reason, guarded the
// same way as the completion write.
func (r *MeetingRepository) MarkFailed(ctx context.Context, id uuid.UUID, generation int, reason string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status = ? AND pipeline_generation = ?",
			id, entities.MeetingStatusProcessing, generation).
		Updates(map[string]interface{}{
			"status":         entities.MeetingStatusFailed,
			"failure_reason": reason,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindStuckProcessing returns meetings that entered processing before the
// cutoff and never reached a terminal status.
func (r *MeetingRepository) FindStuckProcessing(ctx context.Context, before time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", entities.MeetingStatusProcessing, before).
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}
