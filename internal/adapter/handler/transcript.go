package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	dto "github.com/advanced-insight/advisory-backoffice/internal/adapter/dto/transcript"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/repositories"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/insight"
)

// MeetingFinder looks up a meeting by ID (nil when not found).
type MeetingFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
}

// ClientFinder looks up a client by ID (nil when not found).
type ClientFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error)
}

// Transcript handles transcript reads, corrections and on-demand
// summary and email generation.
type Transcript struct {
	transcriptRepo repositories.TranscriptRepository
	meetings       MeetingFinder
	clients        ClientFinder
	insightService *insight.Service
	logger         *zap.Logger
}

// NewTranscript creates a transcript handler
func NewTranscript(transcriptRepo repositories.TranscriptRepository, meetings MeetingFinder, clients ClientFinder, insightService *insight.Service, logger *zap.Logger) *Transcript {
	return &Transcript{
		transcriptRepo: transcriptRepo,
		meetings:       meetings,
		clients:        clients,
		insightService: insightService,
		logger:         logger,
	}
}

// GetByMeeting returns the transcript owned by a meeting
func (h *Transcript) GetByMeeting(c echo.Context) error {
	meetingID, err := parseUUIDParam(c, "meetingId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	transcript, err := h.transcriptRepo.FindByMeetingID(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBFailed(err))
	}
	if transcript == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("transcript"))
	}

	return HandleSuccess(h.logger, c, transcript)
}

// Update overwrites transcript text and facts after manual correction
func (h *Transcript) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	transcript, err := h.transcriptRepo.UpdateContent(c.Request().Context(), id, req.FullText, req.HardFacts, req.SoftFacts)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBFailed(err))
	}
	if transcript == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("transcript"))
	}

	return HandleSuccess(h.logger, c, transcript)
}

// GenerateSummary returns the cached or freshly generated summary
func (h *Transcript) GenerateSummary(c echo.Context) error {
	var req dto.GenerateSummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	transcriptID := parseOptionalUUID(req.TranscriptID)

	summary, err := h.insightService.GenerateSummary(c.Request().Context(), insight.SummaryRequest{
		TranscriptID: transcriptID,
		Transcript:   req.Transcript,
		MeetingTitle: req.MeetingTitle,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.GenerateSummaryResponse{Summary: summary})
}

// GenerateEmail returns the cached or freshly drafted follow-up email
func (h *Transcript) GenerateEmail(c echo.Context) error {
	var req dto.GenerateEmailRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	transcriptID := parseOptionalUUID(req.TranscriptID)

	meetingDate := time.Time{}
	if req.MeetingDate != "" {
		if parsed, err := parseMeetingDate(req.MeetingDate); err == nil {
			meetingDate = parsed
		}
	}

	params := insight.EmailParams{
		Transcript:    req.Transcript,
		HardFacts:     req.HardFacts,
		SoftFacts:     req.SoftFacts,
		MeetingTitle:  req.MeetingTitle,
		MeetingDate:   meetingDate,
		ClientName:    req.ClientName,
		ClientCompany: req.ClientCompany,
		UserName:      req.UserName,
		UserCompany:   req.UserCompany,
	}
	h.resolveClient(c.Request().Context(), transcriptID, &params)

	email, err := h.insightService.GenerateEmail(c.Request().Context(), insight.EmailRequest{
		TranscriptID: transcriptID,
		Params:       params,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.GenerateEmailResponse{Email: email})
}

// resolveClient fills missing client fields from the stored records when the
// request names a transcript. Lookup failures leave the fields as sent.
func (h *Transcript) resolveClient(ctx context.Context, transcriptID uuid.UUID, params *insight.EmailParams) {
	if params.ClientName != "" && params.ClientCompany != "" {
		return
	}
	if transcriptID == uuid.Nil {
		return
	}

	transcript, err := h.transcriptRepo.FindByID(ctx, transcriptID)
	if err != nil || transcript == nil {
		return
	}
	meeting, err := h.meetings.FindByID(ctx, transcript.MeetingID)
	if err != nil || meeting == nil {
		return
	}
	client, err := h.clients.FindByID(ctx, meeting.ClientID)
	if err != nil || client == nil {
		return
	}

	if params.ClientName == "" {
		params.ClientName = client.DisplayName()
	}
	if params.ClientCompany == "" {
		params.ClientCompany = client.Company()
	}
}

func parseOptionalUUID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
