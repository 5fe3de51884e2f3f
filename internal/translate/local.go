package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lughat.dev/lughat/internal/apperr"
	"lughat.dev/lughat/internal/langdetect"
	"lughat.dev/lughat/internal/language"
)

const (
	// DefaultLocalEndpoint points to a local OpenAI-compatible translation endpoint.
	DefaultLocalEndpoint = "http://127.0.0.1:8845/v1"
	// DefaultLocalModel is the default model name.
	DefaultLocalModel = "tencent/HY-MT1.5-7B"
)

// LocalProvider translates text by calling an OpenAI-compatible chat
// completions endpoint. It needs no API credential; language detection
// runs offline.
type LocalProvider struct {
	endpointURL string
	model       string
	client      *http.Client
}

// NewLocalProvider builds a local provider for the given endpoint/model.
// Blank values fall back to the defaults.
func NewLocalProvider(endpoint, model string, timeout time.Duration) *LocalProvider {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultLocalModel
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &LocalProvider{
		endpointURL: chatCompletionsURL(normalizeEndpoint(endpoint)),
		model:       trimmedModel,
		client:      &http.Client{Timeout: timeout},
	}
}

func (p *LocalProvider) Name() string {
	return "local"
}

func (p *LocalProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperr.Validation("text is required")
	}

	sourceLang := language.NormalizeSource(req.SourceLang)
	targetLang := language.NormalizeCode(req.TargetLang)
	if targetLang == "" {
		return nil, apperr.Validation("target language is required")
	}

	body, err := json.Marshal(localChatRequest{
		Model: p.model,
		Messages: []localChatMessage{
			{
				Role:    "user",
				Content: buildTranslatePrompt(text, targetLang),
			},
		},
		Temperature: 0.7,
		TopP:        0.6,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Gateway(err, "build translation request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, apperr.Gateway(err, "send translation request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Gateway(err, "read translation response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Gateway(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
			"translation endpoint rejected request",
		)
	}

	var parsed localChatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, apperr.Gateway(fmt.Errorf("%w: %v", ErrMalformedResponse, err), "decode translation response")
	}
	if len(parsed.Choices) == 0 {
		return nil, apperr.Gateway(ErrMalformedResponse, "translation response missing choices")
	}

	translated := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if translated == "" {
		return nil, apperr.Gateway(ErrMalformedResponse, "translation response was empty")
	}

	return &TranslateResponse{
		Text:         translated,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

// DetectLanguage runs offline via lingua; an undetectable sample is
// reported as a malformed response so callers degrade to "auto".
func (p *LocalProvider) DetectLanguage(_ context.Context, text string) (string, error) {
	code := langdetect.DetectISO6391(text)
	if code == "" {
		return "", apperr.Gateway(ErrMalformedResponse, "language could not be detected")
	}
	return code, nil
}

// Languages returns the static table the local model is prompted with.
func (p *LocalProvider) Languages(_ context.Context) ([]Language, error) {
	return SupportedLanguages(), nil
}

type localChatRequest struct {
	Model       string             `json:"model"`
	Messages    []localChatMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
	TopP        float64            `json:"top_p,omitempty"`
}

type localChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type localChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func buildTranslatePrompt(text, targetLang string) string {
	return fmt.Sprintf(
		"Translate the following segment into %s, without additional explanation.\n\n%s",
		languageName(targetLang), text,
	)
}

func normalizeEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return DefaultLocalEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultLocalEndpoint
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if parsed.Path == "" {
		parsed.Path = "/v1"
	}
	return parsed.String()
}

func chatCompletionsURL(endpoint string) string {
	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultLocalEndpoint + "/chat/completions"
	}

	path := strings.TrimRight(parsed.Path, "/")
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		parsed.Path = path
	case strings.HasSuffix(path, "/v1"):
		parsed.Path = path + "/chat/completions"
	case path == "":
		parsed.Path = "/v1/chat/completions"
	default:
		parsed.Path = path + "/v1/chat/completions"
	}

	return parsed.String()
}
