package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"lughat.dev/lughat/internal/apperr"
	"lughat.dev/lughat/internal/extract"
	"lughat.dev/lughat/internal/history"
	"lughat.dev/lughat/internal/language"
	"lughat.dev/lughat/internal/render"
	"lughat.dev/lughat/internal/translate"
)

// FailureMarker is the literal text recorded when a file translation's
// provider reply cannot be understood. The operation still succeeds with
// this marker instead of aborting.
const FailureMarker = "Translation failed."

// Service is the request/response facade over the store, the gateway and
// the renderers. It owns no mutable state of its own; the store carries
// its own lock, rendering is pure.
type Service struct {
	store    *history.Store
	registry *translate.Registry
	pdf      *render.PDFRenderer
	logger   zerolog.Logger
}

func NewService(store *history.Store, registry *translate.Registry, pdf *render.PDFRenderer, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		registry: registry,
		pdf:      pdf,
		logger:   logger,
	}
}

// TranslateText translates a text snippet and records it. Validation
// happens before any gateway call.
func (s *Service) TranslateText(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperr.Validation("text is required")
	}
	target := language.NormalizeCode(targetLang)
	if target == "" {
		return "", apperr.Validation("target language is required")
	}
	source := language.NormalizeSource(sourceLang)

	provider, err := s.registry.Provider("")
	if err != nil {
		return "", apperr.Gateway(err, "resolve translation provider")
	}

	resp, err := provider.Translate(ctx, translate.TranslateRequest{
		Text:       text,
		SourceLang: source,
		TargetLang: target,
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return "", err
		}
		return "", apperr.Gateway(err, "translate text")
	}

	entry := history.NewEntry(history.KindText, source, target, text, resp.Text, "")
	if err := s.store.Append(entry); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("provider", resp.ProviderName).
		Str("from", source).
		Str("to", target).
		Int64("latency_ms", resp.LatencyMs).
		Str("entry_id", entry.ID).
		Msg("text translated")

	return resp.Text, nil
}

// FileTranslation is the outcome of a translate-file operation.
type FileTranslation struct {
	Translated   string
	DetectedLang string
	EntryID      string
}

// TranslateFile extracts text from an uploaded document, detects its
// language, translates it and records the event. Two deliberate
// degradation points: a malformed detect reply falls back to "auto", and
// a malformed translate reply yields the literal FailureMarker text.
func (s *Service) TranslateFile(ctx context.Context, data []byte, filename, targetLang string) (*FileTranslation, error) {
	target := language.NormalizeCode(targetLang)
	if target == "" {
		return nil, apperr.Validation("target language is required")
	}

	format, err := extract.ResolveFormat(filename)
	if err != nil {
		return nil, err
	}
	text, err := extract.Text(data, format)
	if err != nil {
		return nil, err
	}

	provider, err := s.registry.Provider("")
	if err != nil {
		return nil, apperr.Gateway(err, "resolve translation provider")
	}

	detected, err := provider.DetectLanguage(ctx, text)
	if err != nil {
		if !errors.Is(err, translate.ErrMalformedResponse) {
			return nil, apperr.Gateway(err, "detect language")
		}
		detected = language.Auto
	}

	translated := ""
	resp, err := provider.Translate(ctx, translate.TranslateRequest{
		Text:       text,
		SourceLang: detected,
		TargetLang: target,
	})
	switch {
	case err == nil:
		translated = resp.Text
	case errors.Is(err, translate.ErrMalformedResponse):
		s.logger.Warn().Err(err).Str("filename", filename).Msg("provider reply unusable, recording failure marker")
		translated = FailureMarker
	default:
		return nil, apperr.Gateway(err, "translate file")
	}

	entry := history.NewEntry(history.KindFile, detected, target, text, translated, filename)
	if err := s.store.Append(entry); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("filename", filename).
		Str("format", format.String()).
		Str("detected", detected).
		Str("to", target).
		Str("entry_id", entry.ID).
		Msg("file translated")

	return &FileTranslation{
		Translated:   translated,
		DetectedLang: detected,
		EntryID:      entry.ID,
	}, nil
}

// ListHistory prunes expired entries and returns the remainder in
// insertion order.
func (s *Service) ListHistory() ([]history.Entry, error) {
	return s.store.Load()
}

// GetHistoryEntry returns one entry by id.
func (s *Service) GetHistoryEntry(id string) (history.Entry, error) {
	return s.store.Get(id)
}

// DeleteHistory removes the entries whose ids match; unknown ids are
// ignored.
func (s *Service) DeleteHistory(ids []string) error {
	return s.store.DeleteByIDs(ids)
}

// Languages lists the provider's supported languages.
func (s *Service) Languages(ctx context.Context) ([]translate.Language, error) {
	provider, err := s.registry.Provider("")
	if err != nil {
		return nil, apperr.Gateway(err, "resolve translation provider")
	}
	languages, err := provider.Languages(ctx)
	if err != nil {
		return nil, apperr.Gateway(err, "list supported languages")
	}
	return languages, nil
}

// ExportPDF renders text as a paged PDF with RTL shaping.
func (s *Service) ExportPDF(text string) ([]byte, error) {
	return s.pdf.Render(text)
}

// ExportDOCX renders text as a DOCX, one paragraph per line.
func (s *Service) ExportDOCX(text string) ([]byte, error) {
	return render.DOCX(text)
}

// CleanupExpired drops entries past the retention window.
func (s *Service) CleanupExpired() (int, error) {
	return s.store.CleanupExpired()
}
