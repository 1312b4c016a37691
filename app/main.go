package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/jomei/notionapi"

	"github.com/jc749/creator-economy-notion/app/cfg"
	"github.com/jc749/creator-economy-notion/app/config"
	"github.com/jc749/creator-economy-notion/app/feed"
	"github.com/jc749/creator-economy-notion/app/notion"
	"github.com/jc749/creator-economy-notion/app/tasks"
	"github.com/jc749/creator-economy-notion/app/transcriber"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting podcast transcription run", "version", appCfg.Version)

	feedsFile, err := config.NewLoader(appCfg.FeedsFile).Load()
	if err != nil {
		slog.Error("Failed to load feeds file", "path", appCfg.FeedsFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded feeds configuration", "feeds", len(feedsFile.Feeds))

	ctx := context.Background()

	geminiClient, err := transcriber.NewClient(ctx, appCfg.GeminiAPIKey)
	if err != nil {
		slog.Error("Failed to create Gemini client", "error", err)
		os.Exit(1)
	}
	defer geminiClient.Close()

	notionClient := notionapi.NewClient(notionapi.Token(appCfg.NotionAPIKey))

	episodeTranscriber := transcriber.New(geminiClient, geminiClient)

	// leftover uploads from prior interrupted runs are expected
	episodeTranscriber.CleanupAll(ctx)

	ledger := notion.NewLedger(notionClient.Database, appCfg.NotionDatabaseID)
	ledger.Load(ctx)

	writer := notion.NewWriter(notionClient.Page, notionClient.Block, appCfg.NotionDatabaseID)

	httpClient := &http.Client{}
	downloader := feed.NewDownloader(httpClient, appCfg.UserAgent)

	runner := tasks.NewRunner(feedsFile.Feeds, httpClient, feed.NewParser(),
		ledger, downloader, episodeTranscriber, writer,
		appCfg.UserAgent, appCfg.EpisodeLimit)

	total := runner.Run(ctx)

	slog.Info("Run complete", "processed", total)
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
