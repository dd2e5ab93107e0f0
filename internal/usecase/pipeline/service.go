package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/internal/domain/entities"
	"github.com/advanced-insight/advisory-backoffice/internal/domain/repositories"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/storage"
	"github.com/advanced-insight/advisory-backoffice/pkg/config"
	"github.com/advanced-insight/advisory-backoffice/pkg/jobcontext"
)

// Transcriber converts an audio stream into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

// FactExtractor asks the language model for the fact extraction JSON.
// The raw assistant content is returned; parsing happens here.
type FactExtractor interface {
	ExtractFacts(ctx context.Context, transcript string) (string, error)
}

// DegradationCounter records pipeline runs that completed without
// usable fact extraction.
type DegradationCounter interface {
	IncrExtractionDegraded(ctx context.Context) error
}

// Service runs the audio processing pipeline: transcribe the recording,
// extract facts, install the transcript and move the meeting to its
// terminal status. Runs are detached from the scheduling request and
// serialized per meeting.
type Service struct {
	meetingRepo repositories.MeetingRepository
	store       storage.AudioStore
	transcriber Transcriber
	extractor   FactExtractor
	degraded    DegradationCounter
	parser      *Parser
	cfg         *config.PipelineConfig
	logger      *zap.Logger

	retryInitialInterval time.Duration
	retryMaxInterval     time.Duration
	retryMaxElapsed      time.Duration

	locks *keyedMutex
	wg    sync.WaitGroup

	watchdogStop chan struct{}
	watchdogDone chan struct{}
}

// NewService creates a pipeline service.
func NewService(
	meetingRepo repositories.MeetingRepository,
	store storage.AudioStore,
	transcriber Transcriber,
	extractor FactExtractor,
	degraded DegradationCounter,
	cfg *config.PipelineConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		store:       store,
		transcriber: transcriber,
		extractor:   extractor,
		degraded:    degraded,
		parser:      NewParser(),
		cfg:         cfg,
		logger:      logger,

		retryInitialInterval: 2 * time.Second,
		retryMaxInterval:     10 * time.Second,
		retryMaxElapsed:      30 * time.Second,

		locks: newKeyedMutex(),
	}
}

// Schedule launches a detached run for a meeting that has already been
// moved into processing. It returns immediately; the run's outcome is
// observable only through the meeting status.
func (s *Service) Schedule(meetingID uuid.UUID, generation int, audioPath string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := jobcontext.RunBegin(meetingID, generation, s.cfg.RunTimeout)
		defer cancel()

		s.locks.Lock(meetingID)
		defer s.locks.Unlock(meetingID)

		err := jobcontext.RunEnd(ctx, func(ctx context.Context) error {
			return s.run(ctx, meetingID, generation, audioPath)
		})
		if err != nil {
			s.fail(meetingID, generation, err)
		}
	}()
}

// Wait blocks until all in-flight runs finish. Used during shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) run(ctx context.Context, meetingID uuid.UUID, generation int, audioPath string) error {
	log := s.logger.With(
		zap.String("meeting_id", meetingID.String()),
		zap.Int("generation", generation),
	)
	log.Info("pipeline run started", zap.String("audio_path", audioPath))

	audio, err := s.store.Open(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer audio.Close()

	text, err := s.transcribeWithRetry(ctx, audio)
	if err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	log.Info("transcription finished",
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", jobcontext.Elapsed(ctx)))

	hardFacts, softFacts := s.extractFacts(ctx, log, text)

	transcript := entities.NewTranscript(meetingID, text, hardFacts, softFacts)
	ok, err := s.meetingRepo.CompleteWithTranscript(ctx, meetingID, generation, transcript)
	if err != nil {
		return fmt.Errorf("persist transcript: %w", err)
	}
	if !ok {
		log.Warn("run superseded by a newer upload, result discarded")
		return nil
	}

	log.Info("pipeline run completed", zap.Duration("elapsed", jobcontext.Elapsed(ctx)))
	return nil
}

// extractFacts never fails the run. A model or parse error degrades to
// empty fact lists and is surfaced through the log and the counter.
func (s *Service) extractFacts(ctx context.Context, log *zap.Logger, transcript string) ([]string, []string) {
	raw, err := s.extractor.ExtractFacts(ctx, transcript)
	if err != nil {
		s.noteDegradation(ctx, log, err)
		return []string{}, []string{}
	}

	facts, err := s.parser.ParseFactExtraction(raw)
	if err != nil {
		s.noteDegradation(ctx, log, err)
		return []string{}, []string{}
	}

	return facts.HardFacts, facts.SoftFacts
}

func (s *Service) noteDegradation(ctx context.Context, log *zap.Logger, err error) {
	log.Warn("fact extraction degraded, storing empty fact lists", zap.Error(err))
	if s.degraded != nil {
		if cerr := s.degraded.IncrExtractionDegraded(ctx); cerr != nil {
			log.Warn("failed to record degradation counter", zap.Error(cerr))
		}
	}
}

func (s *Service) transcribeWithRetry(ctx context.Context, audio io.Reader) (string, error) {
	var text string

	// Streams are not rewindable, so retries only cover the polling
	// phase; buffer once up front to make the whole call retryable.
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = s.retryInitialInterval
	expBackoff.MaxInterval = s.retryMaxInterval
	expBackoff.MaxElapsedTime = s.retryMaxElapsed

	operation := func() error {
		result, err := s.transcriber.Transcribe(ctx, bytes.NewReader(data))
		if err != nil {
			return err
		}
		text = result
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(expBackoff, ctx)); err != nil {
		return "", err
	}
	return text, nil
}

// fail records the failure reason on the meeting. A CAS miss means a
// newer run owns the row, in which case the error is only logged.
func (s *Service) fail(meetingID uuid.UUID, generation int, runErr error) {
	log := s.logger.With(
		zap.String("meeting_id", meetingID.String()),
		zap.Int("generation", generation),
	)
	log.Error("pipeline run failed", zap.Error(runErr))

	// The run context may already be expired; use a fresh one so the
	// failure is always recorded.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ok, err := s.meetingRepo.MarkFailed(ctx, meetingID, generation, runErr.Error())
	if err != nil {
		log.Error("failed to mark meeting as failed", zap.Error(err))
		return
	}
	if !ok {
		log.Warn("failure superseded by a newer upload, not recorded")
	}
}

// StartWatchdog sweeps meetings stuck in processing past the cutoff and
// fails them. It covers runs lost to a crash or an unrecorded panic.
func (s *Service) StartWatchdog() {
	s.watchdogStop = make(chan struct{})
	s.watchdogDone = make(chan struct{})

	go func() {
		defer close(s.watchdogDone)

		ticker := time.NewTicker(s.cfg.WatchdogEvery)
		defer ticker.Stop()

		for {
			select {
			case <-s.watchdogStop:
				return
			case <-ticker.C:
				s.sweepStuck()
			}
		}
	}()

	s.logger.Info("pipeline watchdog started",
		zap.Duration("interval", s.cfg.WatchdogEvery),
		zap.Duration("cutoff", s.cfg.StuckCutoff))
}

// StopWatchdog stops the sweep loop and waits for it to exit.
func (s *Service) StopWatchdog() {
	if s.watchdogStop == nil {
		return
	}
	close(s.watchdogStop)
	<-s.watchdogDone
}

func (s *Service) sweepStuck() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.cfg.StuckCutoff)
	stuck, err := s.meetingRepo.FindStuckProcessing(ctx, cutoff)
	if err != nil {
		s.logger.Error("watchdog sweep failed", zap.Error(err))
		return
	}

	for _, m := range stuck {
		ok, err := s.meetingRepo.MarkFailed(ctx, m.ID, m.PipelineGeneration, "processing timed out")
		if err != nil {
			s.logger.Error("watchdog failed to mark stuck meeting",
				zap.String("meeting_id", m.ID.String()), zap.Error(err))
			continue
		}
		if ok {
			s.logger.Warn("watchdog failed stuck meeting",
				zap.String("meeting_id", m.ID.String()),
				zap.Int("generation", m.PipelineGeneration))
		}
	}
}
