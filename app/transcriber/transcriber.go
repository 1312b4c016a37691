package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
)

const (
	maxAttempts       = 5
	pollInterval      = 5 * time.Second
	processingTimeout = 600 * time.Second
)

// ErrAttemptsExhausted is returned when every transcription attempt failed.
var ErrAttemptsExhausted = errors.New("transcription attempts exhausted")

// Result holds the model output for one episode.
type Result struct {
	Summary    string
	Transcript string
}

// Transcriber drives the upload, poll, generate, cleanup sequence against
// the remote transcription service with bounded retries.
type Transcriber struct {
	files     Files
	generator Generator

	// injectable for tests
	sleep func(time.Duration)
	now   func() time.Time
}

func New(files Files, generator Generator) *Transcriber {
	return &Transcriber{
		files:     files,
		generator: generator,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Run transcribes the audio file at audioPath, retrying with exponential
// backoff. On total failure the returned error wraps ErrAttemptsExhausted
// and the last attempt's error.
func (t *Transcriber) Run(ctx context.Context, audioPath string) (*Result, error) {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := t.attempt(ctx, audioPath)
		if err == nil {
			return result, nil
		}

		lastErr = err
		slog.Warn("Transcription attempt failed",
			"attempt", attempt+1,
			"max_attempts", maxAttempts,
			"error", err)

		if attempt < maxAttempts-1 {
			backoff := time.Duration(60*(1<<uint(attempt))) * time.Second
			slog.Debug("Backing off before retry", "delay", backoff.String())
			t.sleep(backoff)
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, maxAttempts, lastErr)
}

// attempt performs one full upload-to-generation cycle. The uploaded remote
// file is deleted on every exit path so failed attempts never leave
// orphaned handles behind.
func (t *Transcriber) attempt(ctx context.Context, audioPath string) (*Result, error) {
	file, err := t.files.Upload(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer t.deleteFile(ctx, file.Name)

	file, err = t.awaitProcessing(ctx, file)
	if err != nil {
		return nil, err
	}

	summary, err := t.generator.Generate(ctx, summaryPrompt, file)
	if err != nil {
		return nil, fmt.Errorf("summary generation failed: %w", err)
	}

	transcript, err := t.generator.Generate(ctx, transcriptPrompt, file)
	if err != nil {
		return nil, fmt.Errorf("transcript generation failed: %w", err)
	}

	return &Result{
		Summary:    strings.TrimSpace(summary),
		Transcript: transcript,
	}, nil
}

// awaitProcessing polls the remote file state until it leaves PROCESSING,
// or fails once the total wait exceeds processingTimeout.
func (t *Transcriber) awaitProcessing(ctx context.Context, file *genai.File) (*genai.File, error) {
	start := t.now()

	for file.State == genai.FileStateProcessing {
		if t.now().Sub(start) > processingTimeout {
			return nil, fmt.Errorf("remote processing timed out after %s", processingTimeout)
		}

		t.sleep(pollInterval)

		refreshed, err := t.files.Get(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("status check failed: %w", err)
		}
		file = refreshed
	}

	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("remote processing failed for %s", file.Name)
	}

	return file, nil
}

// deleteFile removes a remote file, best effort. Deletion failures are
// logged and never override the attempt's outcome.
func (t *Transcriber) deleteFile(ctx context.Context, name string) {
	if err := t.files.Delete(ctx, name); err != nil {
		slog.Warn("Failed to delete remote file", "file", name, "error", err)
	}
}

// CleanupAll deletes every file held by the remote service, best effort.
// Leftover handles from prior interrupted runs are expected.
func (t *Transcriber) CleanupAll(ctx context.Context) {
	files, err := t.files.List(ctx)
	if err != nil {
		slog.Warn("Failed to list remote files for cleanup", "error", err)
		return
	}

	deleted := 0
	for _, file := range files {
		if err := t.files.Delete(ctx, file.Name); err != nil {
			slog.Warn("Failed to delete orphaned remote file", "file", file.Name, "error", err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		slog.Info("Deleted orphaned remote files", "count", deleted)
	}
}
