package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the feeds configuration file
type Loader struct {
	path string
}

// NewLoader creates a new feeds configuration loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates the feeds file
func (l *Loader) Load() (*File, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.validate(&file); err != nil {
		return nil, fmt.Errorf("invalid feeds file %s: %w", l.path, err)
	}

	return &file, nil
}

// validate validates the feeds configuration
func (l *Loader) validate(file *File) error {
	if len(file.Feeds) == 0 {
		return fmt.Errorf("at least one feed is required")
	}

	for i, feed := range file.Feeds {
		if feed.URL == "" {
			return fmt.Errorf("feed at index %d: URL is required", i)
		}
		if feed.MaxEpisodes < 0 {
			return fmt.Errorf("feed at index %d: max_episodes must be non-negative", i)
		}
	}

	return nil
}
