package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/insight"
	"github.com/advanced-insight/advisory-backoffice/pkg/config"
	pkgvalidator "github.com/advanced-insight/advisory-backoffice/pkg/validator"
)

type stubTranscriptRepo struct {
	transcript *entities.Transcript
}

func (r *stubTranscriptRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	return r.transcript, nil
}
func (r *stubTranscriptRepo) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error) {
	return r.transcript, nil
}
func (r *stubTranscriptRepo) UpdateContent(ctx context.Context, id uuid.UUID, fullText string, hardFacts, softFacts []string) (*entities.Transcript, error) {
	return r.transcript, nil
}
func (r *stubTranscriptRepo) CacheSummary(ctx context.Context, id uuid.UUID, summary string) error {
	return nil
}
func (r *stubTranscriptRepo) CacheEmail(ctx context.Context, id uuid.UUID, email string) error {
	return nil
}

type stubComposer struct {
	response   string
	lastPrompt string
}

func (c *stubComposer) Compose(ctx context.Context, system, prompt string) (string, error) {
	c.lastPrompt = prompt
	return c.response, nil
}

type stubMeetingFinder struct {
	meeting *entities.Meeting
}

func (f *stubMeetingFinder) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return f.meeting, nil
}

type stubClientFinder struct {
	client *entities.Client
}

func (f *stubClientFinder) FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	return f.client, nil
}

func newTranscriptTestServer(repo *stubTranscriptRepo, composer *stubComposer) (*echo.Echo, *Transcript) {
	e := echo.New()
	e.Validator = pkgvalidator.New()

	cfg := &config.PipelineConfig{TranscriptLimit: 12000}
	svc := insight.NewService(repo, composer, cfg, zap.NewNop())
	h := NewTranscript(repo, &stubMeetingFinder{}, &stubClientFinder{}, svc, zap.NewNop())
	return e, h
}

func TestGenerateSummary_Endpoint(t *testing.T) {
	e, h := newTranscriptTestServer(&stubTranscriptRepo{}, &stubComposer{response: "a tidy summary"})

	body := `{"transcript":"we discussed pensions","meetingTitle":"Pension call"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/transcripts/generate-summary", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GenerateSummary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Summary string `json:"summary"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Data.Summary != "a tidy summary" {
		t.Errorf("unexpected summary: %q", resp.Data.Summary)
	}
}

func TestGenerateSummary_EmptyTranscriptRejected(t *testing.T) {
	e, h := newTranscriptTestServer(&stubTranscriptRepo{}, &stubComposer{response: "unused"})

	req := httptest.NewRequest(http.MethodPost, "/v1/transcripts/generate-summary", strings.NewReader(`{"transcript":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GenerateSummary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateEmail_Endpoint(t *testing.T) {
	e, h := newTranscriptTestServer(&stubTranscriptRepo{}, &stubComposer{response: "Dear client, ..."})

	body := `{
		"transcript": "we agreed to move the ISA",
		"hardFacts": ["ISA balance 40k"],
		"softFacts": [],
		"meetingTitle": "ISA review",
		"clientName": "Alex Doyle",
		"clientCompany": "Doyle Holdings",
		"userName": "Ryan McCarlie",
		"userCompany": "Advanced Insight"
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/transcripts/generate-email", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GenerateEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Data.Email != "Dear client, ..." {
		t.Errorf("unexpected email: %q", resp.Data.Email)
	}
}

func TestGenerateEmail_FillsClientFromRecords(t *testing.T) {
	client := entities.NewClient("Alex", uuid.New())
	client.Surname = "Doyle"
	client.CompanyName = "Doyle Holdings"
	meeting := entities.NewMeeting(client.ID, uuid.New(), "ISA review", time.Now())
	transcript := entities.NewTranscript(meeting.ID, "we agreed to move the ISA", nil, nil)

	repo := &stubTranscriptRepo{transcript: transcript}
	composer := &stubComposer{response: "Dear Alex, ..."}

	e := echo.New()
	e.Validator = pkgvalidator.New()
	svc := insight.NewService(repo, composer, &config.PipelineConfig{TranscriptLimit: 12000}, zap.NewNop())
	h := NewTranscript(repo, &stubMeetingFinder{meeting: meeting}, &stubClientFinder{client: client}, svc, zap.NewNop())

	body := `{"transcript":"we agreed to move the ISA","transcriptId":"` + transcript.ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/transcripts/generate-email", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GenerateEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(composer.lastPrompt, "Alex Doyle") {
		t.Error("expected prompt to carry the stored client name")
	}
	if !strings.Contains(composer.lastPrompt, "Doyle Holdings") {
		t.Error("expected prompt to carry the stored client company")
	}
}

func TestGetByMeeting_NotFound(t *testing.T) {
	e, h := newTranscriptTestServer(&stubTranscriptRepo{}, &stubComposer{})

	req := httptest.NewRequest(http.MethodGet, "/v1/transcripts/meeting/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("meetingId")
	c.SetParamValues(uuid.New().String())

	if err := h.GetByMeeting(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
