// Package gateway is the client for the OpenRouter-compatible LLM gateway
// that the application delegates its report generation to. The smoke tests
// call the gateway directly to separate "the gateway is misbehaving" from
// "our backend is misbehaving".
package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// Options configures a gateway Client.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	// Referer and Title are sent as the HTTP-Referer and X-Title attribution
	// headers OpenRouter uses to identify calling applications.
	Referer string
	Title   string
}

// Client wraps the OpenAI-protocol client with the gateway's base URL, bearer
// auth, and attribution headers.
type Client struct {
	api   *openai.Client
	model string
}

func New(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{
		Transport: &attributionTransport{
			base:    http.DefaultTransport,
			referer: opts.Referer,
			title:   opts.Title,
		},
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: opts.Model,
	}
}

// ListModels queries the gateway's model catalog. It doubles as an API key
// check, since the gateway rejects the request outright when the key is bad.
func (c *Client) ListModels(ctx context.Context) ([]openai.Model, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	return list.Models, nil
}

// CompletionRequest is a single system/user exchange to send to the gateway.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float32
}

// Completion is the reply to a CompletionRequest.
type Completion struct {
	Content string
	Model   string
}

// Complete sends one chat completion and returns the first choice's content
// along with the model the gateway reports having used.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return Completion{}, errors.New("gateway returned no choices")
	}
	return Completion{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
	}, nil
}

// attributionTransport adds the attribution headers to every outgoing request.
type attributionTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	if t.referer != "" {
		r2.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		r2.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(r2)
}
