package feed

import (
	"testing"
)

const rssWithEnclosure = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Creator Weekly</title>
    <link>https://example.com</link>
    <description>A show about creators</description>
    <item>
      <title>Episode 1: The Beginning</title>
      <link>https://example.com/ep1</link>
      <pubDate>Mon, 02 Jan 2023 15:04:05 GMT</pubDate>
      <enclosure url="https://cdn.example.com/ep1.mp3" length="123456" type="audio/mpeg"/>
    </item>
    <item>
      <title>Episode 2: Mislabeled</title>
      <enclosure url="https://cdn.example.com/ep2.mp3" length="123456" type="application/octet-stream"/>
    </item>
  </channel>
</rss>`

const rssWithAudioLink = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Linked Audio</title>
    <item>
      <title>Episode via link</title>
      <link>https://cdn.example.com/ep.mp3?token=abc</link>
    </item>
    <item>
      <title>Episode without audio</title>
      <link>https://example.com/shownotes</link>
    </item>
  </channel>
</rss>`

func TestParserRun(t *testing.T) {
	parser := NewParser()

	metadata, items, err := parser.Run([]byte(rssWithEnclosure))
	if err != nil {
		t.Fatal(err)
	}

	if metadata.Title != "Creator Weekly" {
		t.Errorf("Expected title 'Creator Weekly', got '%s'", metadata.Title)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	if items[0].Title != "Episode 1: The Beginning" {
		t.Errorf("Expected item title 'Episode 1: The Beginning', got '%s'", items[0].Title)
	}
	if items[0].Published == "" {
		t.Error("Expected raw published date to be set")
	}
	if items[0].AudioURL != "https://cdn.example.com/ep1.mp3" {
		t.Errorf("Expected enclosure audio URL, got '%s'", items[0].AudioURL)
	}
	if items[0].AudioType != "audio/mpeg" {
		t.Errorf("Expected audio/mpeg type, got '%s'", items[0].AudioType)
	}

	// Mislabeled enclosure types are still taken as audio
	if items[1].AudioURL != "https://cdn.example.com/ep2.mp3" {
		t.Errorf("Expected fallback to first enclosure, got '%s'", items[1].AudioURL)
	}
}

func TestParserAudioLinkFallback(t *testing.T) {
	parser := NewParser()

	_, items, err := parser.Run([]byte(rssWithAudioLink))
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	if items[0].AudioURL != "https://cdn.example.com/ep.mp3?token=abc" {
		t.Errorf("Expected audio link with query string, got '%s'", items[0].AudioURL)
	}
	if items[1].AudioURL != "" {
		t.Errorf("Expected no audio URL for item without enclosure or audio link, got '%s'", items[1].AudioURL)
	}
}

func TestParserInvalidFeed(t *testing.T) {
	parser := NewParser()

	if _, _, err := parser.Run([]byte("not a feed")); err == nil {
		t.Error("Expected error for invalid feed data")
	}
}

func TestHasAudioExtension(t *testing.T) {
	cases := []struct {
		url      string
		expected bool
	}{
		{"https://cdn.example.com/ep.mp3", true},
		{"https://cdn.example.com/ep.M4A", true},
		{"https://cdn.example.com/ep.ogg?sig=x", true},
		{"https://example.com/page.html", false},
		{"https://example.com/noext", false},
		{"://bad url", false},
	}

	for _, c := range cases {
		if got := hasAudioExtension(c.url); got != c.expected {
			t.Errorf("hasAudioExtension(%q) = %v, expected %v", c.url, got, c.expected)
		}
	}
}
