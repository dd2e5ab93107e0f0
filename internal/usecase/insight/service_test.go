package insight

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/pkg/config"
)

type fakeTranscriptRepo struct {
	transcript     *entities.Transcript
	cachedSummary  string
	cachedEmail    string
	summaryCached  int
	emailCached    int
	cacheErr       error
}

func (r *fakeTranscriptRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	return r.transcript, nil
}
func (r *fakeTranscriptRepo) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error) {
	return r.transcript, nil
}
func (r *fakeTranscriptRepo) UpdateContent(ctx context.Context, id uuid.UUID, fullText string, hardFacts, softFacts []string) (*entities.Transcript, error) {
	return nil, nil
}
func (r *fakeTranscriptRepo) CacheSummary(ctx context.Context, id uuid.UUID, summary string) error {
	r.summaryCached++
	r.cachedSummary = summary
	return r.cacheErr
}
func (r *fakeTranscriptRepo) CacheEmail(ctx context.Context, id uuid.UUID, email string) error {
	r.emailCached++
	r.cachedEmail = email
	return r.cacheErr
}

type fakeComposer struct {
	response string
	err      error
	calls    int
	lastUser string
}

func (c *fakeComposer) Compose(ctx context.Context, system, prompt string) (string, error) {
	c.calls++
	c.lastUser = prompt
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func testConfig() *config.PipelineConfig {
	return &config.PipelineConfig{TranscriptLimit: 12000}
}

func TestGenerateSummary_CachedShortCircuits(t *testing.T) {
	transcript := entities.NewTranscript(uuid.New(), "full text", nil, nil)
	transcript.Summary = "already summarized"

	repo := &fakeTranscriptRepo{transcript: transcript}
	composer := &fakeComposer{response: "fresh summary"}
	svc := NewService(repo, composer, testConfig(), zap.NewNop())

	got, err := svc.GenerateSummary(context.Background(), SummaryRequest{
		TranscriptID: transcript.ID,
		Transcript:   "full text",
		MeetingTitle: "Annual review",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "already summarized" {
		t.Errorf("expected cached summary, got %q", got)
	}
	if composer.calls != 0 {
		t.Errorf("expected composer not called for cached summary, called %d times", composer.calls)
	}
}

func TestGenerateSummary_ComposesAndCaches(t *testing.T) {
	transcript := entities.NewTranscript(uuid.New(), "client discussed pension options", nil, nil)

	repo := &fakeTranscriptRepo{transcript: transcript}
	composer := &fakeComposer{response: "generated summary"}
	svc := NewService(repo, composer, testConfig(), zap.NewNop())

	got, err := svc.GenerateSummary(context.Background(), SummaryRequest{
		TranscriptID: transcript.ID,
		Transcript:   "client discussed pension options",
		MeetingTitle: "Annual review",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "generated summary" {
		t.Errorf("unexpected summary: %q", got)
	}
	if composer.calls != 1 {
		t.Errorf("expected exactly one compose call, got %d", composer.calls)
	}
	if repo.summaryCached != 1 || repo.cachedSummary != "generated summary" {
		t.Error("expected summary cached on transcript")
	}
	if !strings.Contains(composer.lastUser, "Annual review") {
		t.Error("expected meeting title in prompt")
	}
}

func TestGenerateSummary_EmptyTranscript(t *testing.T) {
	svc := NewService(&fakeTranscriptRepo{}, &fakeComposer{}, testConfig(), zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), SummaryRequest{Transcript: "   "})
	if err == nil {
		t.Fatal("expected error for empty transcript")
	}
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_TRANSCRIPT_EMPTY {
		t.Errorf("expected TRANSCRIPT_EMPTY, got %v", err)
	}
}

func TestGenerateSummary_FailureCachesNothing(t *testing.T) {
	transcript := entities.NewTranscript(uuid.New(), "some text", nil, nil)
	repo := &fakeTranscriptRepo{transcript: transcript}
	composer := &fakeComposer{err: stderrors.New("model unavailable")}
	svc := NewService(repo, composer, testConfig(), zap.NewNop())

	_, err := svc.GenerateSummary(context.Background(), SummaryRequest{
		TranscriptID: transcript.ID,
		Transcript:   "some text",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if repo.summaryCached != 0 {
		t.Error("expected nothing cached after failed generation")
	}
}

func TestGenerateEmail_ComposesWithFacts(t *testing.T) {
	transcript := entities.NewTranscript(uuid.New(), "discussed ISA transfer",
		[]string{"ISA balance 40k"}, []string{"keen to consolidate accounts"})

	repo := &fakeTranscriptRepo{transcript: transcript}
	composer := &fakeComposer{response: "Dear Alex, ..."}
	svc := NewService(repo, composer, testConfig(), zap.NewNop())

	got, err := svc.GenerateEmail(context.Background(), EmailRequest{
		TranscriptID: transcript.ID,
		Params: EmailParams{
			Transcript:    "discussed ISA transfer",
			HardFacts:     []string{"ISA balance 40k"},
			SoftFacts:     []string{"keen to consolidate accounts"},
			MeetingTitle:  "ISA review",
			MeetingDate:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			ClientName:    "Alex Doyle",
			ClientCompany: "Doyle Holdings",
			UserName:      "Ryan McCarlie",
			UserCompany:   "Advanced Insight",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Dear Alex, ..." {
		t.Errorf("unexpected email: %q", got)
	}
	if repo.emailCached != 1 {
		t.Error("expected email cached on transcript")
	}
	if !strings.Contains(composer.lastUser, "ISA balance 40k") {
		t.Error("expected hard facts in prompt")
	}
	if !strings.Contains(composer.lastUser, "Alex Doyle") {
		t.Error("expected client name in prompt")
	}
}

func TestGenerateEmail_CachedShortCircuits(t *testing.T) {
	transcript := entities.NewTranscript(uuid.New(), "text", nil, nil)
	transcript.EmailContent = "existing email"

	repo := &fakeTranscriptRepo{transcript: transcript}
	composer := &fakeComposer{}
	svc := NewService(repo, composer, testConfig(), zap.NewNop())

	got, err := svc.GenerateEmail(context.Background(), EmailRequest{
		TranscriptID: transcript.ID,
		Params:       EmailParams{Transcript: "text"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "existing email" {
		t.Errorf("expected cached email, got %q", got)
	}
	if composer.calls != 0 {
		t.Error("expected composer not called")
	}
}

func TestGenerateEmail_FallsBackToStoredFacts(t *testing.T) {
	transcript := entities.NewTranscript(uuid.New(), "stored transcript text",
		[]string{"owns rental property"}, nil)

	repo := &fakeTranscriptRepo{transcript: transcript}
	composer := &fakeComposer{response: "email body"}
	svc := NewService(repo, composer, testConfig(), zap.NewNop())

	_, err := svc.GenerateEmail(context.Background(), EmailRequest{
		TranscriptID: transcript.ID,
		Params:       EmailParams{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(composer.lastUser, "stored transcript text") {
		t.Error("expected stored transcript used when request omits it")
	}
	if !strings.Contains(composer.lastUser, "owns rental property") {
		t.Error("expected stored facts used when request omits them")
	}
}
