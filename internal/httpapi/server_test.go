package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"lughat.dev/lughat/internal/translate"
)

func newTestRouter(t *testing.T, provider *stubProvider) *echo.Echo {
	t.Helper()

	svc := newTestService(t, provider)
	server := NewServer(svc, zerolog.Nop(), Options{})
	e, err := server.buildEcho()
	if err != nil {
		t.Fatalf("buildEcho failed: %v", err)
	}
	return e
}

func TestTranslateEndpointRejectsMissingText(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{translated: "hola"}
	e := newTestRouter(t, provider)

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"tgt_lang":"es"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if provider.translateCalls != 0 {
		t.Fatalf("gateway must not be called for invalid bodies")
	}
}

func TestTranslateEndpointReturnsTranslation(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, &stubProvider{translated: "hola"})

	req := httptest.NewRequest(http.MethodPost, "/translate",
		strings.NewReader(`{"text":"hello","src_lang":"auto","tgt_lang":"es"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload["translation"] != "hola" {
		t.Fatalf("unexpected response: %v", payload)
	}
}

func TestTranslateFileEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, &stubProvider{translated: "hallo", detected: "en"})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "note.docx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(docxFixture(t, "hello")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.WriteField("fileTargetLang", "de"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/translate_file", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload["translation"] != "hallo" || payload["detected_lang"] != "en" || payload["history_id"] == "" {
		t.Fatalf("unexpected response: %v", payload)
	}
}

func TestHistoryEndpointsListDetailDelete(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, &stubProvider{translated: "bonjour"})

	// Seed one entry through the public surface.
	req := httptest.NewRequest(http.MethodPost, "/translate",
		strings.NewReader(`{"text":"hello","tgt_lang":"fr"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed translate failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("history list status = %d", rec.Code)
	}
	var list struct {
		Data struct {
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("parse list: %v", err)
	}
	if len(list.Data.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(list.Data.Items))
	}
	id := list.Data.Items[0].ID

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("history detail status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing entry status = %d, want 404", rec.Code)
	}

	deleteReq := httptest.NewRequest(http.MethodPost, "/delete_history",
		strings.NewReader(`{"ids":["`+id+`"]}`))
	deleteReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, deleteReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("parse list: %v", err)
	}
	if len(list.Data.Items) != 0 {
		t.Fatalf("expected empty history after delete, got %d", len(list.Data.Items))
	}
}

func TestLanguagesEndpointReturnsBareArray(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, &stubProvider{languages: []translate.Language{
		{Code: "ar", Name: "Arabic"},
		{Code: "en", Name: "English"},
	}})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/languages", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var languages []translate.Language
	if err := json.Unmarshal(rec.Body.Bytes(), &languages); err != nil {
		t.Fatalf("parse languages: %v", err)
	}
	if len(languages) != 2 || languages[0].Code != "ar" {
		t.Fatalf("unexpected languages: %v", languages)
	}
}

func TestDownloadDocxSetsAttachmentHeaders(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, &stubProvider{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download_docx?text=Hello%0AWorld", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, "translated.docx") {
		t.Fatalf("unexpected disposition: %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != docxContentType {
		t.Fatalf("unexpected content type: %q", got)
	}
}

func TestDownloadPdfWithoutTextIsValidationError(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, &stubProvider{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download_pdf", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
