package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// API credentials
	GeminiAPIKey     string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key (required)" required:"true"`
	NotionAPIKey     string `long:"notion-api-key" env:"NOTION_API_KEY" description:"Notion integration token (required)" required:"true"`
	NotionDatabaseID string `long:"notion-database-id" env:"NOTION_DATABASE_ID" description:"Notion database ID for episode records (required)" required:"true"`

	// Application configuration
	FeedsFile    string `long:"feeds-file" env:"FEEDS_FILE" default:"./feeds.yml" description:"Path to the feeds configuration file"`
	EpisodeLimit int    `long:"episode-limit" env:"EPISODE_LIMIT" default:"10" description:"Maximum recent episodes to consider per feed"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Creator Economy Notion/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		GeminiAPIKey:     raw.GeminiAPIKey,
		NotionAPIKey:     raw.NotionAPIKey,
		NotionDatabaseID: raw.NotionDatabaseID,
		FeedsFile:        raw.FeedsFile,
		EpisodeLimit:     raw.EpisodeLimit,
		UserAgent:        raw.UserAgent,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
