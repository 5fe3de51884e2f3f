package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lughat.dev/lughat/internal/apperr"
	"lughat.dev/lughat/internal/language"
)

// DefaultGoogleBaseURL is the v2 REST endpoint of the Google translation
// API; detect and languages hang off the same path.
const DefaultGoogleBaseURL = "https://translation.googleapis.com/language/translate/v2"

// GoogleProvider calls the Google Translate v2 REST API keyed by an API
// credential.
type GoogleProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGoogleProvider builds a provider for the public endpoint. The
// timeout bounds every call so no request hangs past it.
func NewGoogleProvider(apiKey string, timeout time.Duration) *GoogleProvider {
	return NewGoogleProviderWithBaseURL(apiKey, DefaultGoogleBaseURL, timeout)
}

// NewGoogleProviderWithBaseURL exists for tests pointing at a stub server.
func NewGoogleProviderWithBaseURL(apiKey, baseURL string, timeout time.Duration) *GoogleProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GoogleProvider{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

type googleTranslatePayload struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	text := req.Text
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("text is required")
	}
	targetLang := language.NormalizeCode(req.TargetLang)
	if targetLang == "" {
		return nil, apperr.Validation("target language is required")
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("target", targetLang)
	params.Set("format", "text")
	sourceLang := language.NormalizeSource(req.SourceLang)
	if !language.IsAuto(sourceLang) {
		params.Set("source", sourceLang)
	}

	started := time.Now()
	body, err := p.get(ctx, "", params)
	if err != nil {
		return nil, err
	}

	var payload googleTranslatePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperr.Gateway(fmt.Errorf("%w: %v", ErrMalformedResponse, err), "decode translate response")
	}
	if len(payload.Data.Translations) == 0 {
		return nil, apperr.Gateway(ErrMalformedResponse, "translate response missing translations")
	}

	translation := payload.Data.Translations[0]
	if language.IsAuto(sourceLang) && translation.DetectedSourceLanguage != "" {
		sourceLang = language.NormalizeSource(translation.DetectedSourceLanguage)
	}

	return &TranslateResponse{
		Text:         translation.TranslatedText,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

type googleDetectPayload struct {
	Data struct {
		Detections [][]struct {
			Language string `json:"language"`
		} `json:"detections"`
	} `json:"data"`
}

// DetectLanguage returns the detected ISO 639-1 code. A reply that
// arrives but lacks a detection is reported via ErrMalformedResponse so
// the caller can degrade to "auto".
func (p *GoogleProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	params := url.Values{}
	params.Set("q", text)

	body, err := p.get(ctx, "/detect", params)
	if err != nil {
		return "", err
	}

	var payload googleDetectPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", apperr.Gateway(fmt.Errorf("%w: %v", ErrMalformedResponse, err), "decode detect response")
	}
	if len(payload.Data.Detections) == 0 || len(payload.Data.Detections[0]) == 0 {
		return "", apperr.Gateway(ErrMalformedResponse, "detect response missing detections")
	}

	code := language.NormalizeCode(payload.Data.Detections[0][0].Language)
	if code == "" {
		return "", apperr.Gateway(ErrMalformedResponse, "detect response carries no usable language code")
	}
	return code, nil
}

type googleLanguagesPayload struct {
	Data struct {
		Languages []Language `json:"languages"`
	} `json:"data"`
}

// Languages lists the provider's supported languages with English names,
// in the order the endpoint returns them.
func (p *GoogleProvider) Languages(ctx context.Context) ([]Language, error) {
	params := url.Values{}
	params.Set("target", "en")

	body, err := p.get(ctx, "/languages", params)
	if err != nil {
		return nil, err
	}

	var payload googleLanguagesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperr.Gateway(fmt.Errorf("%w: %v", ErrMalformedResponse, err), "decode languages response")
	}
	return payload.Data.Languages, nil
}

func (p *GoogleProvider) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("key", p.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperr.Gateway(err, "build request")
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, apperr.Gateway(err, "call translation endpoint")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Gateway(err, "read translation response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Gateway(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			"translation endpoint rejected request",
		)
	}
	return body, nil
}
