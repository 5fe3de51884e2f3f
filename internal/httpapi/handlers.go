package httpapi

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"lughat.dev/lughat/internal/apperr"
	"lughat.dev/lughat/internal/payloadschema"
)

const (
	pdfContentType  = "application/pdf"
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	maxUploadBytes  = 32 << 20
)

func (s *Server) handleLanguages(c echo.Context) error {
	languages, err := s.svc.Languages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, languages)
}

func (s *Server) handleTranslate(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUploadBytes))
	if err != nil {
		return apperr.Validation("read request body: %v", err)
	}

	req, err := payloadschema.ValidateTranslateRequest(body)
	if err != nil {
		return err
	}

	translated, err := s.svc.TranslateText(c.Request().Context(), req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"translation": translated})
}

func (s *Server) handleTranslateFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperr.Validation("file is required")
	}
	targetLang := strings.TrimSpace(c.FormValue("fileTargetLang"))
	if targetLang == "" {
		return apperr.Validation("fileTargetLang is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperr.Validation("open uploaded file: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return apperr.Validation("read uploaded file: %v", err)
	}

	result, err := s.svc.TranslateFile(c.Request().Context(), data, fileHeader.Filename, targetLang)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"translation":   result.Translated,
		"detected_lang": result.DetectedLang,
		"history_id":    result.EntryID,
	})
}

func (s *Server) handleHistoryList(c echo.Context) error {
	entries, err := s.svc.ListHistory()
	if err != nil {
		return err
	}
	return success(c, map[string]any{"items": entries})
}

func (s *Server) handleHistoryDetail(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failValidation(c, map[string]string{"id": "is required"})
	}

	entry, err := s.svc.GetHistoryEntry(id)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return failNotFound(c, "History entry not found")
		}
		return err
	}
	return success(c, entry)
}

func (s *Server) handleDeleteHistory(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUploadBytes))
	if err != nil {
		return apperr.Validation("read request body: %v", err)
	}

	req, err := payloadschema.ValidateDeleteHistoryRequest(body)
	if err != nil {
		return err
	}
	if err := s.svc.DeleteHistory(req.IDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleDownloadPDF(c echo.Context) error {
	text := c.QueryParam("text")
	if strings.TrimSpace(text) == "" {
		return apperr.Validation("text is required")
	}

	data, err := s.svc.ExportPDF(text)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=translated.pdf`)
	return c.Blob(http.StatusOK, pdfContentType, data)
}

func (s *Server) handleDownloadDOCX(c echo.Context) error {
	text := c.QueryParam("text")
	if strings.TrimSpace(text) == "" {
		return apperr.Validation("text is required")
	}

	data, err := s.svc.ExportDOCX(text)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=translated.docx`)
	return c.Blob(http.StatusOK, docxContentType, data)
}
