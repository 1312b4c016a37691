package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const downloadTimeout = 300 * time.Second

// Downloader streams episode audio to a temporary local file. The caller
// is responsible for removing the returned file.
type Downloader struct {
	httpClient *http.Client
	userAgent  string
}

func NewDownloader(httpClient *http.Client, userAgent string) *Downloader {
	return &Downloader{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (d *Downloader) Run(ctx context.Context, audioURL string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", audioURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	tmpFile, err := os.CreateTemp("", "episode-*.mp3")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to write audio to disk: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return tmpFile.Name(), nil
}
