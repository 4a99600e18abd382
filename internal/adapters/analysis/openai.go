// internal/adapters/analysis/openai.go
package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"webenum/internal/platform/errors"
	"webenum/internal/platform/httpclient"
	"webenum/internal/platform/logx"
)

// DefaultTemperature keeps the classification close to deterministic.
const DefaultTemperature = 0.3

// chatRequest is the chat completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse contiene solo los campos que se usan.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// OpenAIOptions configura el OpenAIAnalyzer.
type OpenAIOptions struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration

	// MaxRetries on 429/5xx and network errors
	MaxRetries int

	Logger logx.Logger
}

// OpenAIAnalyzer submits prompts to an OpenAI compatible chat completions
// endpoint and returns choices[0].message.content untouched.
type OpenAIAnalyzer struct {
	client   *httpclient.Client
	apiKey   string
	model    string
	endpoint string
	logger   logx.Logger
}

// NewOpenAIAnalyzer crea el analyzer.
func NewOpenAIAnalyzer(opts OpenAIOptions) *OpenAIAnalyzer {
	if opts.Logger == nil {
		opts.Logger = logx.NewSilent()
	}
	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = "gpt-3.5-turbo"
	}
	if strings.TrimSpace(opts.Endpoint) == "" {
		opts.Endpoint = "https://api.openai.com/v1/chat/completions"
	}

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = opts.MaxRetries
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}

	return &OpenAIAnalyzer{
		client:   httpclient.New(cfg, opts.Logger),
		apiKey:   strings.TrimSpace(opts.APIKey),
		model:    opts.Model,
		endpoint: opts.Endpoint,
		logger:   opts.Logger.With("component", "openai_analyzer"),
	}
}

func (a *OpenAIAnalyzer) Name() string { return "openai" }

// Enabled reports whether a credential is configured.
func (a *OpenAIAnalyzer) Enabled() bool {
	return a.apiKey != ""
}

// Analyze envía el prompt como único mensaje de usuario.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	if !a.Enabled() {
		return "", errors.ErrUnauthorized
	}

	body, err := json.Marshal(chatRequest{
		Model:       a.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: DefaultTemperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "encode request")
	}

	resp, err := a.client.PostJSON(ctx, a.endpoint, body, map[string]string{
		"Authorization": "Bearer " + a.apiKey,
	})
	if err != nil {
		return "", err
	}

	if statusErr := httpclient.CheckStatus(resp); statusErr != nil {
		raw, _ := httpclient.ReadBody(resp)
		if msg := apiErrorMessage(raw); msg != "" {
			return "", errors.Wrap(statusErr, msg)
		}
		return "", statusErr
	}

	raw, err := httpclient.ReadBody(resp)
	if err != nil {
		return "", err
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", errors.Wrapf(errors.ErrInvalidResponse, "decode completion: %v", err)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.Wrap(errors.ErrInvalidResponse, "completion has no choices")
	}

	content := decoded.Choices[0].Message.Content
	a.logger.Debug("completion received", "model", a.model, "bytes", len(content))
	return content, nil
}

// apiErrorMessage extracts {"error":{"message":...}} when present.
func apiErrorMessage(raw []byte) string {
	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded.Error == nil {
		return ""
	}
	return decoded.Error.Message
}
