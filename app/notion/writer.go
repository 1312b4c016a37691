package notion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jomei/notionapi"
)

const (
	summaryLimit     = 2000
	maxBlocksPerCall = 100

	// the create call carries the heading and divider, leaving room
	// for 98 transcript segments
	initialSegmentLimit = maxBlocksPerCall - 2

	appendDelay = 300 * time.Millisecond

	transcriptHeading = "Full Transcript"
)

// Episode is one record to be persisted.
type Episode struct {
	Podcast    string
	Title      string
	Published  string // raw date string from the feed
	Summary    string
	Transcript string
}

// Writer persists episode records as database pages with the full
// transcript materialized as child blocks. Transcripts longer than one
// request allows are written in two phases: create with the leading
// segments, then append the rest in capped batches.
type Writer struct {
	pages      notionapi.PageService
	blocks     notionapi.BlockService
	databaseID notionapi.DatabaseID

	// injectable for tests
	sleep func(time.Duration)
	now   func() time.Time
}

func NewWriter(pages notionapi.PageService, blocks notionapi.BlockService, databaseID string) *Writer {
	return &Writer{
		pages:      pages,
		blocks:     blocks,
		databaseID: notionapi.DatabaseID(databaseID),
		sleep:      time.Sleep,
		now:        time.Now,
	}
}

// Run persists the episode and returns the created page's URL. Store
// errors are propagated, not retried; a failed append leaves a partial
// record behind, which the next run re-creates from scratch.
func (w *Writer) Run(ctx context.Context, episode Episode) (string, error) {
	date := w.parseDate(episode.Published)
	summary := truncate(episode.Summary, summaryLimit)
	segments := splitSegments(episode.Transcript, segmentSize)

	initial := len(segments)
	if initial > initialSegmentLimit {
		initial = initialSegmentLimit
	}

	children := make([]notionapi.Block, 0, initial+2)
	children = append(children, headingBlock(transcriptHeading), dividerBlock())
	for _, segment := range segments[:initial] {
		children = append(children, paragraphBlock(segment))
	}

	page, err := w.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: w.databaseID,
		},
		Properties: notionapi.Properties{
			"Podcast": notionapi.TitleProperty{Title: richText(episode.Podcast)},
			"Episode": notionapi.RichTextProperty{RichText: richText(episode.Title)},
			"Date":    notionapi.DateProperty{Date: &notionapi.DateObject{Start: &date}},
			"Summary": notionapi.RichTextProperty{RichText: richText(summary)},
		},
		Children: children,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create episode page: %w", err)
	}

	remaining := segments[initial:]
	for batch := 1; len(remaining) > 0; batch++ {
		size := min(len(remaining), maxBlocksPerCall)

		blocks := make([]notionapi.Block, 0, size)
		for _, segment := range remaining[:size] {
			blocks = append(blocks, paragraphBlock(segment))
		}

		_, err := w.blocks.AppendChildren(ctx, notionapi.BlockID(page.ID),
			&notionapi.AppendBlockChildrenRequest{Children: blocks})
		if err != nil {
			return "", fmt.Errorf("failed to append transcript batch %d: %w", batch, err)
		}

		slog.Debug("Appended transcript batch", "batch", batch, "blocks", size)

		remaining = remaining[size:]

		// rate limit protection
		w.sleep(appendDelay)
	}

	slog.Info("Episode persisted",
		"episode", episode.Title,
		"segments", len(segments),
		"url", page.URL)

	return page.URL, nil
}

// parseDate parses the feed's published date, best effort. Unparseable
// dates fall back to the current date rather than failing the write.
func (w *Writer) parseDate(published string) notionapi.Date {
	parsed, err := dateparse.ParseAny(published)
	if err != nil {
		slog.Debug("Unparseable published date, using current date", "published", published)
		parsed = w.now()
	}
	return notionapi.Date(parsed)
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: content}},
	}
}

func headingBlock(text string) notionapi.Block {
	return notionapi.Heading1Block{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeHeading1,
		},
		Heading1: notionapi.Heading{RichText: richText(text)},
	}
}

func dividerBlock() notionapi.Block {
	return notionapi.DividerBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeDivider,
		},
		Divider: notionapi.Divider{},
	}
}

func paragraphBlock(text string) notionapi.Block {
	return notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{RichText: richText(text)},
	}
}
