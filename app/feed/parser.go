package feed

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/mmcdole/gofeed"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".wav":  true,
	".aac":  true,
	".flac": true,
}

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []Item, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
	}

	if feed.Image != nil {
		metadata.ImageURL = feed.Image.URL
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, p.normalizeItem(item))
	}

	return metadata, items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	normalized := Item{
		Title:     item.Title,
		Link:      item.Link,
		Published: item.Published,
	}

	normalized.AudioURL, normalized.AudioType = p.resolveAudio(item)

	return normalized
}

// resolveAudio finds the episode's audio resource URL. Enclosures with an
// audio MIME type win; otherwise the first enclosure is taken as-is, since
// podcast feeds routinely mislabel enclosure types. Feeds without
// enclosures fall back to links pointing at a known audio file extension.
func (p *Parser) resolveAudio(item *gofeed.Item) (string, string) {
	for _, enclosure := range item.Enclosures {
		if enclosure == nil || enclosure.URL == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(enclosure.Type), "audio") {
			return enclosure.URL, enclosure.Type
		}
	}

	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil && item.Enclosures[0].URL != "" {
		return item.Enclosures[0].URL, item.Enclosures[0].Type
	}

	for _, link := range item.Links {
		if hasAudioExtension(link) {
			return link, ""
		}
	}

	return "", ""
}

func hasAudioExtension(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return audioExtensions[strings.ToLower(path.Ext(parsed.Path))]
}
