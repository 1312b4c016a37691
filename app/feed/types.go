package feed

// Feed processing types

type Metadata struct {
	Title       string
	Link        string
	Description string
	ImageURL    string
}

type Item struct {
	Title     string
	Link      string
	Published string // raw published date string from the feed

	AudioURL  string // resolved audio resource URL, empty if none found
	AudioType string // MIME type of the audio resource if known
}
