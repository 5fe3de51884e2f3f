package httpapi

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	docx "github.com/fumiama/go-docx"
	"github.com/rs/zerolog"

	"lughat.dev/lughat/internal/apperr"
	"lughat.dev/lughat/internal/history"
	"lughat.dev/lughat/internal/render"
	"lughat.dev/lughat/internal/translate"
)

type stubProvider struct {
	translateCalls int
	detectCalls    int

	translated   string
	translateErr error
	detected     string
	detectErr    error
	languages    []translate.Language
}

func (p *stubProvider) Translate(_ context.Context, req translate.TranslateRequest) (*translate.TranslateResponse, error) {
	p.translateCalls++
	if p.translateErr != nil {
		return nil, p.translateErr
	}
	return &translate.TranslateResponse{
		Text:         p.translated,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.Name(),
	}, nil
}

func (p *stubProvider) DetectLanguage(context.Context, string) (string, error) {
	p.detectCalls++
	if p.detectErr != nil {
		return "", p.detectErr
	}
	return p.detected, nil
}

func (p *stubProvider) Languages(context.Context) ([]translate.Language, error) {
	return p.languages, nil
}

func (p *stubProvider) Name() string {
	return "stub"
}

func newTestService(t *testing.T, provider translate.Provider) *Service {
	t.Helper()

	store := history.Open(filepath.Join(t.TempDir(), "history.json"), history.DefaultTTL)
	registry := translate.NewRegistry("stub")
	if err := registry.Register(provider); err != nil {
		t.Fatalf("register stub provider: %v", err)
	}
	return NewService(store, registry, render.NewPDFRenderer("missing.ttf"), zerolog.Nop())
}

func docxFixture(t *testing.T, lines ...string) []byte {
	t.Helper()

	w := docx.New().WithDefaultTheme()
	for _, line := range lines {
		paragraph := w.AddParagraph()
		if line != "" {
			paragraph.AddText(line)
		}
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("build docx fixture: %v", err)
	}
	return buf.Bytes()
}

func TestTranslateTextValidatesBeforeGateway(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{translated: "bonjour"}
	svc := newTestService(t, provider)

	_, err := svc.TranslateText(context.Background(), "   ", "auto", "fr")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got: %v", err)
	}
	_, err = svc.TranslateText(context.Background(), "hello", "auto", "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for missing target, got: %v", err)
	}
	if provider.translateCalls != 0 {
		t.Fatalf("gateway must not be called before validation passes, calls=%d", provider.translateCalls)
	}
}

func TestTranslateTextAppendsHistoryEntry(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{translated: "bonjour"}
	svc := newTestService(t, provider)

	translated, err := svc.TranslateText(context.Background(), "hello", "", "fr")
	if err != nil {
		t.Fatalf("TranslateText failed: %v", err)
	}
	if translated != "bonjour" {
		t.Fatalf("unexpected translation: %q", translated)
	}

	entries, err := svc.ListHistory()
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Kind != history.KindText || entry.SourceLang != "auto" || entry.TargetLang != "fr" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Original != "hello" || entry.Translated != "bonjour" {
		t.Fatalf("entry payload mismatch: %+v", entry)
	}
}

func TestTranslateTextPropagatesGatewayFailure(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{translateErr: apperr.Gateway(nil, "endpoint down")}
	svc := newTestService(t, provider)

	_, err := svc.TranslateText(context.Background(), "hello", "auto", "fr")
	if !apperr.IsKind(err, apperr.KindGateway) {
		t.Fatalf("expected gateway error, got: %v", err)
	}

	entries, listErr := svc.ListHistory()
	if listErr != nil {
		t.Fatalf("ListHistory failed: %v", listErr)
	}
	if len(entries) != 0 {
		t.Fatalf("failed translations must not be recorded, got %d entries", len(entries))
	}
}

func TestTranslateFileRoundTrip(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{translated: "Hallo Welt", detected: "en"}
	svc := newTestService(t, provider)

	data := docxFixture(t, "Hello", "World")
	result, err := svc.TranslateFile(context.Background(), data, "greeting.docx", "de")
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}
	if result.Translated != "Hallo Welt" || result.DetectedLang != "en" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if provider.detectCalls != 1 || provider.translateCalls != 1 {
		t.Fatalf("expected one detect and one translate call, got %d/%d", provider.detectCalls, provider.translateCalls)
	}

	entry, err := svc.GetHistoryEntry(result.EntryID)
	if err != nil {
		t.Fatalf("GetHistoryEntry failed: %v", err)
	}
	if entry.Kind != history.KindFile || entry.Filename != "greeting.docx" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Original != "Hello\nWorld\n" {
		t.Fatalf("extracted text mismatch: %q", entry.Original)
	}
}

func TestTranslateFileDetectDegradesToAuto(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		translated: "hola",
		detectErr:  apperr.Gateway(translate.ErrMalformedResponse, "detect reply unusable"),
	}
	svc := newTestService(t, provider)

	result, err := svc.TranslateFile(context.Background(), docxFixture(t, "hello"), "note.docx", "es")
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}
	if result.DetectedLang != "auto" {
		t.Fatalf("expected auto fallback, got %q", result.DetectedLang)
	}
}

func TestTranslateFileMalformedTranslateDegradesToMarker(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		detected:     "en",
		translateErr: apperr.Gateway(translate.ErrMalformedResponse, "reply unusable"),
	}
	svc := newTestService(t, provider)

	result, err := svc.TranslateFile(context.Background(), docxFixture(t, "hello"), "note.docx", "es")
	if err != nil {
		t.Fatalf("TranslateFile should degrade, not fail: %v", err)
	}
	if result.Translated != FailureMarker {
		t.Fatalf("expected failure marker, got %q", result.Translated)
	}

	// The degraded outcome is still recorded.
	entry, err := svc.GetHistoryEntry(result.EntryID)
	if err != nil {
		t.Fatalf("GetHistoryEntry failed: %v", err)
	}
	if entry.Translated != FailureMarker {
		t.Fatalf("entry should carry the marker, got %q", entry.Translated)
	}
}

func TestTranslateFileTransportFailureIsGatewayError(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		detected:     "en",
		translateErr: apperr.Gateway(nil, "connection refused"),
	}
	svc := newTestService(t, provider)

	_, err := svc.TranslateFile(context.Background(), docxFixture(t, "hello"), "note.docx", "es")
	if !apperr.IsKind(err, apperr.KindGateway) {
		t.Fatalf("expected gateway error, got: %v", err)
	}
}

func TestTranslateFileRejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{}
	svc := newTestService(t, provider)

	_, err := svc.TranslateFile(context.Background(), []byte("plain"), "notes.txt", "es")
	if !apperr.IsKind(err, apperr.KindUnsupportedFormat) {
		t.Fatalf("expected unsupported-format error, got: %v", err)
	}
	if provider.detectCalls != 0 || provider.translateCalls != 0 {
		t.Fatalf("gateway must not be called for unsupported uploads")
	}
}

func TestExportDOCXOnePerLine(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubProvider{})
	data, err := svc.ExportDOCX("uno\ndos")
	if err != nil {
		t.Fatalf("ExportDOCX failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected docx bytes")
	}
}
