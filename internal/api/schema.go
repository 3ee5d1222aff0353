package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 20

const classifySchemaJSON = `{
  "type": "object",
  "required": ["choices"],
  "properties": {
    "choices": {"type": "array", "items": {"type": "integer", "minimum": 0}}
  },
  "additionalProperties": false
}`

const scoreSchemaJSON = `{
  "type": "object",
  "required": ["pathway_id", "answers"],
  "properties": {
    "pathway_id": {"type": "string", "minLength": 1},
    "answers": {
      "type": "object",
      "additionalProperties": {"type": "integer", "minimum": 0}
    }
  },
  "additionalProperties": false
}`

const contactSchemaJSON = `{
  "type": "object",
  "required": ["name", "email", "message"],
  "properties": {
    "name": {"type": "string"},
    "email": {"type": "string"},
    "company": {"type": "string"},
    "service": {"type": "string"},
    "message": {"type": "string"}
  }
}`

const newsletterSchemaJSON = `{
  "type": "object",
  "required": ["email"],
  "properties": {
    "email": {"type": "string"},
    "name": {"type": "string"}
  }
}`

var (
	classifySchemaLoader   = gojsonschema.NewStringLoader(classifySchemaJSON)
	scoreSchemaLoader      = gojsonschema.NewStringLoader(scoreSchemaJSON)
	contactSchemaLoader    = gojsonschema.NewStringLoader(contactSchemaJSON)
	newsletterSchemaLoader = gojsonschema.NewStringLoader(newsletterSchemaJSON)
)

var errInvalidJSON = errors.New("invalid JSON body")

// schemaError lists the schema violations of a request body
type schemaError struct {
	issues []string
}

func (e *schemaError) Error() string {
	return strings.Join(e.issues, "; ")
}

// decodeBody reads the request body, checks it against schema and decodes it into v
func decodeBody(r *http.Request, schema gojsonschema.JSONLoader, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errInvalidJSON
	}
	if !json.Valid(body) {
		return errInvalidJSON
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return &schemaError{issues: issues}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errInvalidJSON
	}
	return nil
}

// respondDecodeError writes the error envelope for a decodeBody failure
func respondDecodeError(w http.ResponseWriter, err error) {
	var serr *schemaError
	switch {
	case errors.As(err, &serr):
		respondError(w, http.StatusBadRequest, "validation_error", serr.Error())
	case errors.Is(err, errInvalidJSON):
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to read request")
	}
}
