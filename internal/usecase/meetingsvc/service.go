package meetingsvc

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/repositories"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/storage"
	"github.com/advanced-insight/advisory-backoffice/pkg/config"
)

// Scheduler launches a detached pipeline run for a meeting already
// moved into processing.
type Scheduler interface {
	Schedule(meetingID uuid.UUID, generation int, audioPath string)
}

// Service owns the meeting CRUD surface and the upload entry points of
// the processing pipeline.
type Service struct {
	meetingRepo    repositories.MeetingRepository
	transcriptRepo repositories.TranscriptRepository
	clientRepo     repositories.ClientRepository
	store          storage.AudioStore
	scheduler      Scheduler
	uploadCfg      *config.UploadConfig
	logger         *zap.Logger
}

// NewService creates a meeting service.
func NewService(
	meetingRepo repositories.MeetingRepository,
	transcriptRepo repositories.TranscriptRepository,
	clientRepo repositories.ClientRepository,
	store storage.AudioStore,
	scheduler Scheduler,
	uploadCfg *config.UploadConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo:    meetingRepo,
		transcriptRepo: transcriptRepo,
		clientRepo:     clientRepo,
		store:          store,
		scheduler:      scheduler,
		uploadCfg:      uploadCfg,
		logger:         logger,
	}
}

// Upload is an audio file received from a multipart request.
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// CreateInput carries the fields for a new meeting. Audio is optional;
// without it the meeting stays pending until an upload arrives.
type CreateInput struct {
	ClientID     uuid.UUID
	Title        string
	MeetingDate  time.Time
	Participants string
	CreatedBy    uuid.UUID
	Audio        *Upload
}

// Detail is a meeting joined with its transcript. The transcript key is
// always present so callers polling the meeting can tell "no transcript
// yet" (null) apart from a response shape change.
type Detail struct {
	*entities.Meeting
	Transcript *entities.Transcript `json:"transcript"`
}

// Create records a new meeting. When audio is attached the upload is
// validated before any row is written, so a bad file never leaves a
// half-created meeting behind.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Meeting, error) {
	if input.Audio != nil {
		if err := s.validateUpload(input.Audio); err != nil {
			return nil, err
		}
	}

	client, err := s.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if client == nil {
		return nil, errors.ErrNotFound("client")
	}

	meeting := entities.NewMeeting(input.ClientID, input.CreatedBy, input.Title, input.MeetingDate)
	meeting.Participants = input.Participants

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, errors.ErrDBFailed(err)
	}

	if input.Audio != nil {
		if err := s.startProcessing(ctx, meeting, input.Audio); err != nil {
			return nil, err
		}
	}

	return meeting, nil
}

// AttachAudio uploads a recording to an existing meeting and starts a
// pipeline run. Any previous run is superseded.
func (s *Service) AttachAudio(ctx context.Context, meetingID uuid.UUID, upload *Upload) (*entities.Meeting, error) {
	if upload == nil {
		return nil, errors.ErrMissingAudioFile()
	}
	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if meeting == nil {
		return nil, errors.ErrNotFound("meeting")
	}

	if err := s.startProcessing(ctx, meeting, upload); err != nil {
		return nil, err
	}
	return meeting, nil
}

// startProcessing stores the audio, claims the meeting in one status
// write and hands the run to the scheduler.
func (s *Service) startProcessing(ctx context.Context, meeting *entities.Meeting, upload *Upload) error {
	objectName := buildObjectName(meeting.ID, upload.Filename)

	path, err := s.store.Save(ctx, objectName, upload.Content, upload.Size, upload.ContentType)
	if err != nil {
		return errors.ErrStorageFailed("save audio", err)
	}

	generation, err := s.meetingRepo.BeginProcessing(ctx, meeting.ID, path)
	if err != nil {
		return errors.ErrDBFailed(err)
	}

	meeting.Status = entities.MeetingStatusProcessing
	meeting.AudioFilePath = path
	meeting.FailureReason = ""
	meeting.PipelineGeneration = generation

	s.logger.Info("audio attached, pipeline scheduled",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Int("generation", generation),
		zap.String("audio_path", path))

	s.scheduler.Schedule(meeting.ID, generation, path)
	return nil
}

// Get returns the meeting joined with its transcript.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if meeting == nil {
		return nil, errors.ErrNotFound("meeting")
	}

	transcript, err := s.transcriptRepo.FindByMeetingID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}

	return &Detail{Meeting: meeting, Transcript: transcript}, nil
}

// List returns all meetings newest-first.
func (s *Service) List(ctx context.Context) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.List(ctx)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	return meetings, nil
}

// ListByClient returns a client's meetings newest-first.
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	return meetings, nil
}

// UpdateInput carries the editable meeting fields. Nil pointers leave
// the current value untouched.
type UpdateInput struct {
	Title        *string
	MeetingDate  *time.Time
	Participants *string
}

// Update edits meeting metadata. Pipeline state is not editable here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	if meeting == nil {
		return nil, errors.ErrNotFound("meeting")
	}

	if input.Title != nil {
		meeting.Title = *input.Title
	}
	if input.MeetingDate != nil {
		meeting.MeetingDate = *input.MeetingDate
	}
	if input.Participants != nil {
		meeting.Participants = *input.Participants
	}

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, errors.ErrDBFailed(err)
	}
	return meeting, nil
}

// Delete removes the meeting, its transcript and its stored audio. A
// missing audio file does not fail the delete.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		return errors.ErrDBFailed(err)
	}
	if meeting == nil {
		return errors.ErrNotFound("meeting")
	}

	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return errors.ErrDBFailed(err)
	}

	if meeting.AudioFilePath != "" {
		if err := s.store.Delete(ctx, meeting.AudioFilePath); err != nil {
			// The row is gone; an orphaned file is only worth a log line.
			s.logger.Warn("failed to delete audio file",
				zap.String("meeting_id", id.String()),
				zap.String("audio_path", meeting.AudioFilePath),
				zap.Error(err))
		}
	}

	return nil
}

func (s *Service) validateUpload(upload *Upload) error {
	if upload.Content == nil {
		return errors.ErrMissingAudioFile()
	}
	if upload.Size > s.uploadCfg.MaxBytes {
		return errors.ErrUploadTooLarge(s.uploadCfg.MaxBytes)
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	for _, allowed := range s.uploadCfg.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return errors.ErrUnsupportedAudioType(ext)
}

func buildObjectName(meetingID uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("meetings/%s/%s%s", meetingID, uuid.New(), ext)
}
