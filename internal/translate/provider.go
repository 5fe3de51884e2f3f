package translate

import (
	"context"
	"errors"
)

// ErrMalformedResponse marks a provider reply that arrived but could not
// be understood. The two soft-degradation points in the service check for
// it: language detection falls back to "auto", and file translation falls
// back to a literal failure marker instead of aborting.
var ErrMalformedResponse = errors.New("malformed provider response")

// Provider is the external translation gateway: text in, text out, given
// language codes. All calls are bounded by the request context.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	DetectLanguage(ctx context.Context, text string) (string, error)
	Languages(ctx context.Context) ([]Language, error)
	Name() string
}

// TranslateRequest describes one translation request. SourceLang may be
// the "auto" sentinel.
type TranslateRequest struct {
	Text       string
	SourceLang string
	TargetLang string
}

// TranslateResponse contains translated text and provider metadata.
type TranslateResponse struct {
	Text         string
	SourceLang   string
	TargetLang   string
	ProviderName string
	LatencyMs    int64
}

// Language is one entry of a provider's supported-language listing.
type Language struct {
	Code string `json:"language"`
	Name string `json:"name"`
}
