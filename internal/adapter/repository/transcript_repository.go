package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
)

// TranscriptRepository handles transcript data operations
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// FindByID retrieves a transcript by ID
func (r *TranscriptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcript, nil
}

// FindByMeetingID retrieves the transcript owned by a meeting
func (r *TranscriptRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcript, nil
}

// UpdateContent overwrites text and fact lists (manual correction path) and
// returns the updated row.
func (r *TranscriptRepository) UpdateContent(ctx context.Context, id uuid.UUID, fullText string, hardFacts, softFacts []string) (*entities.Transcript, error) {
	if hardFacts == nil {
		hardFacts = []string{}
	}
	if softFacts == nil {
		softFacts = []string{}
	}
	result := r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"full_text":  fullText,
			"hard_facts": datatypes.NewJSONSlice(hardFacts),
			"soft_facts": datatypes.NewJSONSlice(softFacts),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// CacheSummary persists a generated summary into the cached column
func (r *TranscriptRepository) CacheSummary(ctx context.Context, id uuid.UUID, summary string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"summary":    summary,
			"updated_at": time.Now(),
		}).Error
}

// CacheEmail persists a generated follow-up email into the cached column
func (r *TranscriptRepository) CacheEmail(ctx context.Context, id uuid.UUID, email string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email_content": email,
			"updated_at":    time.Now(),
		}).Error
}
