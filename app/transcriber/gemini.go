package transcriber

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const modelName = "gemini-2.5-flash"

var _ Files = (*Client)(nil)
var _ Generator = (*Client)(nil)

// Client wraps the Gemini API file and generation endpoints.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (c *Client) Upload(ctx context.Context, path string) (*genai.File, error) {
	return c.client.UploadFileFromPath(ctx, path, nil)
}

func (c *Client) Get(ctx context.Context, name string) (*genai.File, error) {
	return c.client.GetFile(ctx, name)
}

func (c *Client) Delete(ctx context.Context, name string) error {
	return c.client.DeleteFile(ctx, name)
}

func (c *Client) List(ctx context.Context) ([]*genai.File, error) {
	var files []*genai.File

	it := c.client.ListFiles(ctx)
	for {
		file, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}
		files = append(files, file)
	}

	return files, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, file *genai.File) (string, error) {
	resp, err := c.model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.FileData{URI: file.URI, MIMEType: file.MIMEType})
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("model returned no text")
	}

	return text, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
