package cfg

type Cfg struct {
	// API credentials
	GeminiAPIKey     string
	NotionAPIKey     string
	NotionDatabaseID string

	// Application configuration
	FeedsFile    string
	EpisodeLimit int

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
