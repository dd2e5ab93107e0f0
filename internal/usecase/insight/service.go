package insight

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/repositories"
	"github.com/advanced-insight/advisory-backoffice/pkg/config"
)

// Composer sends a system and user message to the language model and
// returns the assistant content.
type Composer interface {
	Compose(ctx context.Context, system, prompt string) (string, error)
}

// Service generates meeting summaries and follow-up emails on demand.
// Generated content is cached on the transcript row so repeat requests
// never hit the model again.
type Service struct {
	transcriptRepo repositories.TranscriptRepository
	composer       Composer
	cfg            *config.PipelineConfig
	logger         *zap.Logger
}

// NewService creates an insight service.
func NewService(transcriptRepo repositories.TranscriptRepository, composer Composer, cfg *config.PipelineConfig, logger *zap.Logger) *Service {
	return &Service{
		transcriptRepo: transcriptRepo,
		composer:       composer,
		cfg:            cfg,
		logger:         logger,
	}
}

// SummaryRequest is the input for summary generation.
type SummaryRequest struct {
	TranscriptID uuid.UUID
	Transcript   string
	MeetingTitle string
}

// GenerateSummary returns the cached summary when one exists, otherwise
// composes one and caches it. A failed generation caches nothing.
func (s *Service) GenerateSummary(ctx context.Context, req SummaryRequest) (string, error) {
	if req.TranscriptID != uuid.Nil {
		transcript, err := s.transcriptRepo.FindByID(ctx, req.TranscriptID)
		if err != nil {
			return "", errors.ErrDBFailed(err)
		}
		if transcript != nil && transcript.Summary != "" {
			return transcript.Summary, nil
		}
		// Prefer the stored text over what the client sent.
		if transcript != nil && req.Transcript == "" {
			req.Transcript = transcript.FullText
		}
	}

	if strings.TrimSpace(req.Transcript) == "" {
		return "", errors.ErrTranscriptEmpty()
	}

	prompt := buildSummaryPrompt(req.MeetingTitle, req.Transcript, s.cfg.TranscriptLimit)
	summary, err := s.composer.Compose(ctx, summarySystemPrompt, prompt)
	if err != nil {
		return "", errors.ErrGenerationFailed(err)
	}

	if req.TranscriptID != uuid.Nil {
		if err := s.transcriptRepo.CacheSummary(ctx, req.TranscriptID, summary); err != nil {
			// The caller still gets the summary; only the cache write failed.
			s.logger.Warn("failed to cache summary",
				zap.String("transcript_id", req.TranscriptID.String()), zap.Error(err))
		}
	}

	return summary, nil
}

// EmailRequest is the input for follow-up email generation.
type EmailRequest struct {
	TranscriptID uuid.UUID
	Params       EmailParams
}

// GenerateEmail returns the cached email when one exists, otherwise
// composes one and caches it.
func (s *Service) GenerateEmail(ctx context.Context, req EmailRequest) (string, error) {
	if req.TranscriptID != uuid.Nil {
		transcript, err := s.transcriptRepo.FindByID(ctx, req.TranscriptID)
		if err != nil {
			return "", errors.ErrDBFailed(err)
		}
		if transcript != nil && transcript.EmailContent != "" {
			return transcript.EmailContent, nil
		}
		if transcript != nil && req.Params.Transcript == "" {
			req.Params.Transcript = transcript.FullText
			if len(req.Params.HardFacts) == 0 {
				req.Params.HardFacts = transcript.HardFacts
			}
			if len(req.Params.SoftFacts) == 0 {
				req.Params.SoftFacts = transcript.SoftFacts
			}
		}
	}

	if strings.TrimSpace(req.Params.Transcript) == "" {
		return "", errors.ErrTranscriptEmpty()
	}

	prompt := buildEmailPrompt(req.Params, s.cfg.TranscriptLimit)
	email, err := s.composer.Compose(ctx, emailSystemPrompt, prompt)
	if err != nil {
		return "", errors.ErrGenerationFailed(err)
	}

	if req.TranscriptID != uuid.Nil {
		if err := s.transcriptRepo.CacheEmail(ctx, req.TranscriptID, email); err != nil {
			s.logger.Warn("failed to cache email",
				zap.String("transcript_id", req.TranscriptID.String()), zap.Error(err))
		}
	}

	return email, nil
}
