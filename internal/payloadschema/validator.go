// Package payloadschema validates incoming JSON request bodies against
// embedded schemas before any gateway or storage work happens.
package payloadschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"lughat.dev/lughat/internal/apperr"
)

//go:embed translate_request.schema.json
var translateRequestSchemaJSON string

//go:embed delete_history.schema.json
var deleteHistorySchemaJSON string

// TranslateRequest is a validated /translate body.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"src_lang"`
	TargetLang string `json:"tgt_lang"`
}

// DeleteHistoryRequest is a validated /delete_history body.
type DeleteHistoryRequest struct {
	IDs []string `json:"ids"`
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// ValidateTranslateRequest parses and validates a translate body.
// Schema violations come back as validation errors.
func ValidateTranslateRequest(payload []byte) (*TranslateRequest, error) {
	var req TranslateRequest
	if err := validateAgainst("translate_request.schema.json", payload, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperr.Validation("text must not be blank")
	}
	if strings.TrimSpace(req.TargetLang) == "" {
		return nil, apperr.Validation("tgt_lang must not be blank")
	}
	return &req, nil
}

// ValidateDeleteHistoryRequest parses and validates a delete body.
func ValidateDeleteHistoryRequest(payload []byte) (*DeleteHistoryRequest, error) {
	var req DeleteHistoryRequest
	if err := validateAgainst("delete_history.schema.json", payload, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func validateAgainst(name string, payload []byte, out any) error {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return apperr.Validation("request body is not valid JSON: %v", err)
	}

	schemas, err := loadSchemas()
	if err != nil {
		return fmt.Errorf("load schemas: %w", err)
	}
	if err := schemas[name].Validate(value); err != nil {
		return apperr.Validation("request body failed validation: %v", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("normalize payload JSON: %w", err)
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		sources := map[string]string{
			"translate_request.schema.json": translateRequestSchemaJSON,
			"delete_history.schema.json":    deleteHistorySchemaJSON,
		}

		compiled = make(map[string]*jsonschema.Schema, len(sources))
		for name, source := range sources {
			if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
				compileErr = fmt.Errorf("add schema resource %s: %w", name, err)
				return
			}
			schema, err := compiler.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[name] = schema
		}
	})
	return compiled, compileErr
}

func decodeStrictJSON(payload []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(new(any)); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return value, nil
}
