package ai

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/advanced-insight/advisory-backoffice/pkg/config"
)

// AssemblyAIClient wraps the official AssemblyAI SDK for synchronous
// transcription of uploaded meeting audio.
type AssemblyAIClient struct {
	client  *aai.Client
	timeout time.Duration
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	timeout := 90 * time.Second
	if cfg != nil {
		apiKey = cfg.APIKey
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		client:  aai.NewClient(apiKey),
		timeout: timeout,
	}
}

// Transcribe uploads the audio stream and waits for the transcription to
// finish. Provider errors, error-status transcripts and deadline expiry all
// surface as errors; the caller decides whether to retry.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, nil)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription returned error status"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai: %s", msg)
	}

	if transcript.Text == nil || *transcript.Text == "" {
		return "", fmt.Errorf("assemblyai returned empty transcript")
	}

	return *transcript.Text, nil
}
