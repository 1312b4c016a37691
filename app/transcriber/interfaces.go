package transcriber

import (
	"context"

	"github.com/google/generative-ai-go/genai"
)

// Files is the remote audio file surface consumed by the transcriber.
type Files interface {
	Upload(ctx context.Context, path string) (*genai.File, error)
	Get(ctx context.Context, name string) (*genai.File, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]*genai.File, error)
}

// Generator produces text from a prompt and an uploaded file.
type Generator interface {
	Generate(ctx context.Context, prompt string, file *genai.File) (string, error)
}
