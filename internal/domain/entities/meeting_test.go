package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMeetingStatus_CanStartProcessing(t *testing.T) {
	// Every state accepts a fresh upload; completed redoes, failed retries.
	for _, status := range []MeetingStatus{
		MeetingStatusPending,
		MeetingStatusProcessing,
		MeetingStatusCompleted,
		MeetingStatusFailed,
	} {
		if !status.CanStartProcessing() {
			t.Errorf("status %s should accept a new upload", status)
		}
	}

	if MeetingStatus("archived").CanStartProcessing() {
		t.Error("unknown status should not accept uploads")
	}
}

func TestMeetingStatus_IsTerminal(t *testing.T) {
	cases := map[MeetingStatus]bool{
		MeetingStatusPending:    false,
		MeetingStatusProcessing: false,
		MeetingStatusCompleted:  true,
		MeetingStatusFailed:     true,
	}
	for status, want := range cases {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestNewMeeting_Defaults(t *testing.T) {
	clientID := uuid.New()
	createdBy := uuid.New()
	date := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	m := NewMeeting(clientID, createdBy, "Pension review", date)

	if m.Status != MeetingStatusPending {
		t.Errorf("expected pending, got %s", m.Status)
	}
	if m.PipelineGeneration != 0 {
		t.Errorf("expected generation 0, got %d", m.PipelineGeneration)
	}
	if m.ClientID != clientID || m.CreatedBy != createdBy {
		t.Error("ownership fields not set")
	}
}

func TestNewTranscript_NormalizesNilFacts(t *testing.T) {
	tr := NewTranscript(uuid.New(), "text", nil, nil)

	if tr.HardFacts == nil || tr.SoftFacts == nil {
		t.Error("expected nil fact slices normalized to empty")
	}
	if len(tr.HardFacts) != 0 || len(tr.SoftFacts) != 0 {
		t.Error("expected empty fact lists")
	}
}
