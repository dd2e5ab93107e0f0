package meetingsvc

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/pkg/config"
)

type fakeMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
	creates  int
	begun    []uuid.UUID
	deleted  []uuid.UUID
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (r *fakeMeetingRepo) Create(ctx context.Context, m *entities.Meeting) error {
	r.creates++
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return r.meetings[id], nil
}

func (r *fakeMeetingRepo) List(ctx context.Context) ([]*entities.Meeting, error) { return nil, nil }
func (r *fakeMeetingRepo) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*entities.Meeting, error) {
	return nil, nil
}
func (r *fakeMeetingRepo) Update(ctx context.Context, m *entities.Meeting) error { return nil }

func (r *fakeMeetingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.meetings, id)
	return nil
}

func (r *fakeMeetingRepo) BeginProcessing(ctx context.Context, id uuid.UUID, audioPath string) (int, error) {
	r.begun = append(r.begun, id)
	m := r.meetings[id]
	m.PipelineGeneration++
	m.Status = entities.MeetingStatusProcessing
	m.AudioFilePath = audioPath
	return m.PipelineGeneration, nil
}

func (r *fakeMeetingRepo) CompleteWithTranscript(ctx context.Context, id uuid.UUID, generation int, transcript *entities.Transcript) (bool, error) {
	return true, nil
}
func (r *fakeMeetingRepo) MarkFailed(ctx context.Context, id uuid.UUID, generation int, reason string) (bool, error) {
	return true, nil
}
func (r *fakeMeetingRepo) FindStuckProcessing(ctx context.Context, before time.Time) ([]*entities.Meeting, error) {
	return nil, nil
}

type fakeTranscriptRepo struct {
	byMeeting map[uuid.UUID]*entities.Transcript
}

func (r *fakeTranscriptRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	return nil, nil
}
func (r *fakeTranscriptRepo) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error) {
	if r.byMeeting == nil {
		return nil, nil
	}
	return r.byMeeting[meetingID], nil
}
func (r *fakeTranscriptRepo) UpdateContent(ctx context.Context, id uuid.UUID, fullText string, hardFacts, softFacts []string) (*entities.Transcript, error) {
	return nil, nil
}
func (r *fakeTranscriptRepo) CacheSummary(ctx context.Context, id uuid.UUID, summary string) error {
	return nil
}
func (r *fakeTranscriptRepo) CacheEmail(ctx context.Context, id uuid.UUID, email string) error {
	return nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entities.Client
}

func (r *fakeClientRepo) Create(ctx context.Context, c *entities.Client) error { return nil }
func (r *fakeClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	if r.clients == nil {
		return nil, nil
	}
	return r.clients[id], nil
}
func (r *fakeClientRepo) List(ctx context.Context) ([]*entities.Client, error)  { return nil, nil }
func (r *fakeClientRepo) Update(ctx context.Context, c *entities.Client) error  { return nil }
func (r *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }

type fakeStore struct {
	saved   []string
	deleted []string
}

func (s *fakeStore) Save(ctx context.Context, name string, r io.Reader, size int64, ct string) (string, error) {
	s.saved = append(s.saved, name)
	return name, nil
}

func (s *fakeStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (s *fakeStore) Delete(ctx context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

type fakeScheduler struct {
	scheduled []uuid.UUID
	gens      []int
}

func (f *fakeScheduler) Schedule(meetingID uuid.UUID, generation int, audioPath string) {
	f.scheduled = append(f.scheduled, meetingID)
	f.gens = append(f.gens, generation)
}

type fixture struct {
	svc       *Service
	meetings  *fakeMeetingRepo
	clients   *fakeClientRepo
	store     *fakeStore
	scheduler *fakeScheduler
	clientID  uuid.UUID
}

func testUploadConfig() *config.UploadConfig {
	return &config.UploadConfig{
		MaxBytes:          25 * 1024 * 1024,
		AllowedExtensions: []string{".mp3", ".wav", ".m4a", ".ogg", ".mp4"},
	}
}

func newFixture() *fixture {
	client := entities.NewClient("Alex", uuid.New())
	client.Surname = "Doyle"
	client.CompanyName = "Doyle Holdings"
	meetings := newFakeMeetingRepo()
	clients := &fakeClientRepo{clients: map[uuid.UUID]*entities.Client{client.ID: client}}
	store := &fakeStore{}
	scheduler := &fakeScheduler{}

	cfg := testUploadConfig()
	svc := NewService(meetings, &fakeTranscriptRepo{}, clients, store, scheduler, cfg, zap.NewNop())

	return &fixture{
		svc:       svc,
		meetings:  meetings,
		clients:   clients,
		store:     store,
		scheduler: scheduler,
		clientID:  client.ID,
	}
}

func TestCreate_WithoutAudioStaysPending(t *testing.T) {
	f := newFixture()

	meeting, err := f.svc.Create(context.Background(), CreateInput{
		ClientID:    f.clientID,
		Title:       "Intro call",
		MeetingDate: time.Now(),
		CreatedBy:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meeting.Status != entities.MeetingStatusPending {
		t.Errorf("expected pending, got %s", meeting.Status)
	}
	if len(f.scheduler.scheduled) != 0 {
		t.Error("expected no pipeline run without audio")
	}
}

func TestCreate_WithAudioSchedulesRun(t *testing.T) {
	f := newFixture()

	meeting, err := f.svc.Create(context.Background(), CreateInput{
		ClientID:    f.clientID,
		Title:       "Annual review",
		MeetingDate: time.Now(),
		CreatedBy:   uuid.New(),
		Audio: &Upload{
			Filename:    "recording.mp3",
			Size:        1024,
			ContentType: "audio/mpeg",
			Content:     strings.NewReader("audio"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meeting.Status != entities.MeetingStatusProcessing {
		t.Errorf("expected processing, got %s", meeting.Status)
	}
	if len(f.store.saved) != 1 {
		t.Fatal("expected audio saved")
	}
	if len(f.scheduler.scheduled) != 1 || f.scheduler.scheduled[0] != meeting.ID {
		t.Error("expected pipeline scheduled for the meeting")
	}
	if f.scheduler.gens[0] != 1 {
		t.Errorf("expected generation 1, got %d", f.scheduler.gens[0])
	}
}

func TestCreate_UnknownClient(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateInput{ClientID: uuid.New()})
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_NOT_FOUND {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestCreate_BadUploadRejectedBeforeAnyWrite(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateInput{
		ClientID: f.clientID,
		Audio: &Upload{
			Filename: "notes.pdf",
			Size:     1024,
			Content:  strings.NewReader("pdf"),
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_UPLOAD_UNSUPPORTED_TYPE {
		t.Errorf("expected UPLOAD_UNSUPPORTED_TYPE, got %v", err)
	}
	if f.meetings.creates != 0 {
		t.Error("expected no meeting row for a rejected upload")
	}
	if len(f.store.saved) != 0 {
		t.Error("expected nothing saved for a rejected upload")
	}
}

func TestAttachAudio_TooLarge(t *testing.T) {
	f := newFixture()
	meeting := mustCreatePending(t, f)

	_, err := f.svc.AttachAudio(context.Background(), meeting.ID, &Upload{
		Filename: "huge.wav",
		Size:     testUploadConfig().MaxBytes + 1,
		Content:  strings.NewReader("x"),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_UPLOAD_TOO_LARGE {
		t.Errorf("expected UPLOAD_TOO_LARGE, got %v", err)
	}
}

func TestAttachAudio_SupersedesPreviousRun(t *testing.T) {
	f := newFixture()
	meeting := mustCreatePending(t, f)

	for i := 0; i < 2; i++ {
		_, err := f.svc.AttachAudio(context.Background(), meeting.ID, &Upload{
			Filename: "take.m4a",
			Size:     100,
			Content:  strings.NewReader("audio"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(f.scheduler.gens) != 2 || f.scheduler.gens[1] != 2 {
		t.Errorf("expected second run at generation 2, got %v", f.scheduler.gens)
	}
}

func TestAttachAudio_MeetingNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AttachAudio(context.Background(), uuid.New(), &Upload{
		Filename: "a.mp3",
		Size:     10,
		Content:  strings.NewReader("x"),
	})
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_NOT_FOUND {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestGet_NoTranscriptSerializesAsNull(t *testing.T) {
	f := newFixture()
	meeting := mustCreatePending(t, f)

	detail, err := f.svc.Get(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"transcript":null`) {
		t.Errorf("expected transcript key to serialize as null, got %s", body)
	}
}

func TestDelete_RemovesAudioFile(t *testing.T) {
	f := newFixture()
	meeting := mustCreatePending(t, f)

	_, err := f.svc.AttachAudio(context.Background(), meeting.ID, &Upload{
		Filename: "rec.ogg",
		Size:     50,
		Content:  strings.NewReader("audio"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.svc.Delete(context.Background(), meeting.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.meetings.deleted) != 1 {
		t.Error("expected meeting row deleted")
	}
	if len(f.store.deleted) != 1 {
		t.Error("expected audio file deleted")
	}
}

func TestDelete_NoAudioIsFine(t *testing.T) {
	f := newFixture()
	meeting := mustCreatePending(t, f)

	if err := f.svc.Delete(context.Background(), meeting.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.store.deleted) != 0 {
		t.Error("expected no storage delete for a meeting without audio")
	}
}

func mustCreatePending(t *testing.T, f *fixture) *entities.Meeting {
	t.Helper()
	meeting, err := f.svc.Create(context.Background(), CreateInput{
		ClientID:    f.clientID,
		Title:       "Meeting",
		MeetingDate: time.Now(),
		CreatedBy:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return meeting
}
