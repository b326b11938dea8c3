package assistant

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// Ollama calls a self-hosted Ollama server's chat endpoint.
type Ollama struct {
	client *api.Client
	model  string
}

func NewOllama(baseURL, model string, timeout time.Duration) (*Ollama, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid base url: %w", err)
	}
	return &Ollama{
		client: api.NewClient(base, &http.Client{Timeout: timeout}),
		model:  model,
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Reply(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{Role: roleSystem, Content: SystemPrompt},
			{Role: roleUser, Content: prompt},
		},
		Stream: &stream,
	}

	var reply strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}

	return strings.TrimSpace(reply.String()), nil
}
