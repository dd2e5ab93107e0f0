package handler

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	dto "github.com/advanced-insight/advisory-backoffice/internal/adapter/dto/meeting"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/http/middleware"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/meetingsvc"
)

// audioFormField is the multipart field carrying the recording
const audioFormField = "audio_file"

// Meeting handles the meeting endpoints, including audio upload
type Meeting struct {
	meetingService *meetingsvc.Service
	logger         *zap.Logger
}

// NewMeeting creates a meeting handler
func NewMeeting(meetingService *meetingsvc.Service, logger *zap.Logger) *Meeting {
	return &Meeting{meetingService: meetingService, logger: logger}
}

// Create records a new meeting from a multipart form. The audio part
// is optional; without it the meeting stays pending.
func (h *Meeting) Create(c echo.Context) error {
	var req dto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("client_id must be a valid UUID"))
	}

	meetingDate, err := parseMeetingDate(req.MeetingDate)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	userID, _ := middleware.GetUserID(c)

	input := meetingsvc.CreateInput{
		ClientID:     clientID,
		Title:        req.Title,
		MeetingDate:  meetingDate,
		Participants: req.Participants,
		CreatedBy:    userID,
	}

	upload, closeFn, err := h.readAudioPart(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if upload != nil {
		defer closeFn()
		input.Audio = upload
	}

	meeting, err := h.meetingService.Create(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meeting)
}

// Upload attaches audio to an existing meeting and starts processing
func (h *Meeting) Upload(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	upload, closeFn, err := h.readAudioPart(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if upload == nil {
		return HandleError(h.logger, c, errors.ErrMissingAudioFile())
	}
	defer closeFn()

	meeting, err := h.meetingService.AttachAudio(c.Request().Context(), id, upload)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meeting)
}

// Get returns a meeting joined with its transcript
func (h *Meeting) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	detail, err := h.meetingService.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, detail)
}

// List returns all meetings newest-first
func (h *Meeting) List(c echo.Context) error {
	meetings, err := h.meetingService.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetings)
}

// ListByClient returns a client's meetings newest-first
func (h *Meeting) ListByClient(c echo.Context) error {
	clientID, err := parseUUIDParam(c, "clientId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.meetingService.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetings)
}

// Update edits meeting metadata
func (h *Meeting) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	input := meetingsvc.UpdateInput{
		Title:        req.Title,
		Participants: req.Participants,
	}
	if req.MeetingDate != nil {
		date, err := parseMeetingDate(*req.MeetingDate)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		input.MeetingDate = &date
	}

	meeting, err := h.meetingService.Update(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meeting)
}

// Delete removes a meeting with its transcript and audio
func (h *Meeting) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, nil)
}

// readAudioPart opens the audio form part. A missing part returns
// (nil, nil, nil) so callers decide whether audio is required.
func (h *Meeting) readAudioPart(c echo.Context) (*meetingsvc.Upload, func(), error) {
	fileHeader, err := c.FormFile(audioFormField)
	if err != nil {
		return nil, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, errors.ErrInternal(err)
	}

	return &meetingsvc.Upload{
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: contentTypeOf(fileHeader),
		Content:     file,
	}, func() { file.Close() }, nil
}

func contentTypeOf(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// parseMeetingDate accepts RFC3339 or a plain date. Empty input means
// the meeting happened now.
func parseMeetingDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.ErrInvalidArgument("meeting_date must be RFC3339 or YYYY-MM-DD")
}
