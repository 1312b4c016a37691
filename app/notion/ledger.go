package notion

import (
	"context"
	"log/slog"

	"github.com/jomei/notionapi"
)

// episodeProperty is the rich text property holding the episode title.
const episodeProperty = "Episode"

// Ledger is the in-memory set of already-persisted episode titles,
// seeded once per run from the remote database.
type Ledger struct {
	databases  notionapi.DatabaseService
	databaseID notionapi.DatabaseID
	titles     map[string]struct{}
}

func NewLedger(databases notionapi.DatabaseService, databaseID string) *Ledger {
	return &Ledger{
		databases:  databases,
		databaseID: notionapi.DatabaseID(databaseID),
		titles:     make(map[string]struct{}),
	}
}

// Load seeds the ledger by paginating the remote database. Best effort: a
// query failure stops pagination and keeps whatever was accumulated, so the
// run proceeds in duplicate-risk mode rather than aborting.
func (l *Ledger) Load(ctx context.Context) {
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{StartCursor: cursor}

		resp, err := l.databases.Query(ctx, l.databaseID, req)
		if err != nil {
			slog.Warn("Ledger load aborted, continuing with partial set",
				"loaded", len(l.titles), "error", err)
			return
		}

		for _, page := range resp.Results {
			if title, ok := episodeTitle(page); ok {
				l.titles[title] = struct{}{}
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	slog.Info("Loaded processed episodes", "count", len(l.titles))
}

// Contains reports whether the episode title is already persisted.
func (l *Ledger) Contains(title string) bool {
	_, ok := l.titles[title]
	return ok
}

// Add records a title after its record has been persisted.
func (l *Ledger) Add(title string) {
	l.titles[title] = struct{}{}
}

func (l *Ledger) Len() int {
	return len(l.titles)
}

// episodeTitle extracts the episode title from a page's properties.
// Pages with a missing or malformed property are skipped, not fatal.
func episodeTitle(page notionapi.Page) (string, bool) {
	prop, ok := page.Properties[episodeProperty]
	if !ok {
		return "", false
	}

	rich, ok := prop.(*notionapi.RichTextProperty)
	if !ok || len(rich.RichText) == 0 {
		return "", false
	}

	rt := rich.RichText[0]
	if rt.Text != nil && rt.Text.Content != "" {
		return rt.Text.Content, true
	}
	if rt.PlainText != "" {
		return rt.PlainText, true
	}

	return "", false
}
