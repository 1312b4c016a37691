package tasks

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jc749/creator-economy-notion/app/feed"
	"github.com/jc749/creator-economy-notion/app/notion"
)

// ProcessEpisodeTask carries one feed entry through dedup check, download,
// transcription and persistence. Failures are reported to the caller, which
// logs and moves on; one bad episode never aborts the run.
type ProcessEpisodeTask struct {
	Task
	Item feed.Item

	ledger      Ledger
	downloader  Downloader
	transcriber Transcriber
	writer      Writer

	processed bool
}

func NewProcessEpisodeTask(podcast string, item feed.Item, ledger Ledger, downloader Downloader, transcriber Transcriber, writer Writer) *ProcessEpisodeTask {
	return &ProcessEpisodeTask{
		Task:        NewTask(TaskTypeProcessEpisode, podcast),
		Item:        item,
		ledger:      ledger,
		downloader:  downloader,
		transcriber: transcriber,
		writer:      writer,
	}
}

func (t *ProcessEpisodeTask) Execute(ctx context.Context) error {
	title := cmp.Or(t.Item.Title, "Unknown")

	if t.ledger.Contains(title) {
		slog.Debug("Episode already processed, skipping", "podcast", t.Podcast, "episode", title)
		return nil
	}

	if t.Item.AudioURL == "" {
		slog.Warn("No audio URL for episode, skipping", "podcast", t.Podcast, "episode", title)
		return nil
	}

	audioPath, err := t.downloader.Run(ctx, t.Item.AudioURL)
	if err != nil {
		return fmt.Errorf("failed to download audio: %w", err)
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove temp audio file", "path", audioPath, "error", err)
		}
	}()

	result, err := t.transcriber.Run(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	url, err := t.writer.Run(ctx, notion.Episode{
		Podcast:    t.Podcast,
		Title:      title,
		Published:  t.Item.Published,
		Summary:    result.Summary,
		Transcript: result.Transcript,
	})
	if err != nil {
		return fmt.Errorf("failed to persist episode: %w", err)
	}

	// the record exists remotely, so the ledger update is in-memory only
	t.ledger.Add(title)
	t.processed = true

	slog.Info("Task completed",
		"type", "ProcessEpisode",
		"podcast", t.Podcast,
		"episode", title,
		"duration", t.GetDuration(),
		"url", url)

	return nil
}

// Processed reports whether the episode was newly transcribed and persisted.
func (t *ProcessEpisodeTask) Processed() bool {
	return t.processed
}
