package tasks

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jc749/creator-economy-notion/app/config"
	"github.com/jc749/creator-economy-notion/app/feed"
)

const (
	fetchTimeout = 30 * time.Second

	// non-adaptive throttle between transcribed episodes, protecting the
	// transcription API and download bandwidth
	episodeThrottle = 5 * time.Second
)

// Runner iterates the configured feeds sequentially, processing recent
// episodes and aggregating the count of newly persisted ones.
type Runner struct {
	feeds        []config.Feed
	httpClient   *http.Client
	parser       *feed.Parser
	ledger       Ledger
	downloader   Downloader
	transcriber  Transcriber
	writer       Writer
	userAgent    string
	episodeLimit int

	// injectable for tests
	sleep func(time.Duration)
}

func NewRunner(feeds []config.Feed, httpClient *http.Client, parser *feed.Parser,
	ledger Ledger, downloader Downloader, transcriber Transcriber, writer Writer,
	userAgent string, episodeLimit int) *Runner {
	return &Runner{
		feeds:        feeds,
		httpClient:   httpClient,
		parser:       parser,
		ledger:       ledger,
		downloader:   downloader,
		transcriber:  transcriber,
		writer:       writer,
		userAgent:    userAgent,
		episodeLimit: episodeLimit,
		sleep:        time.Sleep,
	}
}

// Run processes every enabled feed and returns the total count of newly
// persisted episodes. Per-feed and per-episode failures are logged and
// skipped, never propagated.
func (r *Runner) Run(ctx context.Context) int {
	total := 0

	for _, feedCfg := range r.feeds {
		if !feedCfg.IsEnabled() {
			slog.Debug("Feed disabled, skipping", "url", feedCfg.URL)
			continue
		}
		total += r.processFeed(ctx, feedCfg)
	}

	return total
}

func (r *Runner) processFeed(ctx context.Context, feedCfg config.Feed) int {
	data, err := r.fetchFeed(ctx, feedCfg.URL)
	if err != nil {
		slog.Error("Failed to fetch feed, skipping", "url", feedCfg.URL, "error", err)
		return 0
	}

	metadata, items, err := r.parser.Run(data)
	if err != nil {
		slog.Error("Failed to parse feed, skipping", "url", feedCfg.URL, "error", err)
		return 0
	}

	if len(items) == 0 {
		slog.Debug("Feed has no entries", "url", feedCfg.URL)
		return 0
	}

	podcast := cmp.Or(metadata.Title, "Unknown")

	// most-recent-first is assumed from feed ordering, not enforced
	limit := cmp.Or(feedCfg.MaxEpisodes, r.episodeLimit)
	if len(items) > limit {
		items = items[:limit]
	}

	processed := 0
	for _, item := range items {
		task := NewProcessEpisodeTask(podcast, item, r.ledger, r.downloader, r.transcriber, r.writer)
		task.Start()

		if err := task.Execute(ctx); err != nil {
			slog.Error("Episode processing failed",
				"podcast", podcast, "episode", item.Title, "error", err)
			continue
		}

		if task.Processed() {
			processed++
			r.sleep(episodeThrottle)
		}
	}

	slog.Info("Feed processed", "podcast", podcast, "entries", len(items), "new", processed)

	return processed
}

func (r *Runner) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
