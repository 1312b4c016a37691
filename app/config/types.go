package config

// File represents the feeds configuration file
type File struct {
	Feeds []Feed `yaml:"feeds"`
}

// Feed represents a single subscribed podcast feed
type Feed struct {
	URL         string `yaml:"url"`
	Enabled     *bool  `yaml:"enabled"`      // nil means enabled
	MaxEpisodes int    `yaml:"max_episodes"` // 0 means use the global episode limit
}

// IsEnabled reports whether the feed should be processed.
func (f Feed) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}
