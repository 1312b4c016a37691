package tasks

import (
	"context"

	"github.com/jc749/creator-economy-notion/app/notion"
	"github.com/jc749/creator-economy-notion/app/transcriber"
)

type Ledger interface {
	Contains(title string) bool
	Add(title string)
}

type Downloader interface {
	Run(ctx context.Context, audioURL string) (string, error)
}

type Transcriber interface {
	Run(ctx context.Context, audioPath string) (*transcriber.Result, error)
}

type Writer interface {
	Run(ctx context.Context, episode notion.Episode) (string, error)
}
