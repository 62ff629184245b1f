package schemas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/datatypes"

	"github.com/andrewpaige1/promptdec-api/models"
)

const maxNameLength = 255

func checkName(v *validator, field, name string) {
	switch {
	case strings.TrimSpace(name) == "":
		v.add(field, "must not be blank")
	case utf8.RuneCountInString(name) > maxNameLength:
		v.add(field, fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
}

func checkTitle(v *validator, field string, title *string) {
	if title != nil && utf8.RuneCountInString(*title) > maxNameLength {
		v.add(field, fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
}

func checkBackFormat(v *validator, field, format string) {
	switch format {
	case models.BackFormatMarkdown, models.BackFormatText:
	default:
		v.add(field, fmt.Sprintf("must be %q or %q", models.BackFormatMarkdown, models.BackFormatText))
	}
}

// unwrapStringified accepts the legacy form where a JSON document was sent
// as a JSON string, and returns the inner document.
func unwrapStringified(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return raw, nil
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil, err
	}
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return json.RawMessage("null"), nil
	}
	if !json.Valid([]byte(inner)) {
		return nil, errors.New("string does not contain valid JSON")
	}
	return json.RawMessage(inner), nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// parseDocument validates a free-form JSON column. Objects and arrays are
// accepted; null clears the column.
func parseDocument(v *validator, field string, raw json.RawMessage) datatypes.JSON {
	doc, err := unwrapStringified(raw)
	if err != nil {
		v.add(field, err.Error())
		return nil
	}
	if isNull(doc) {
		return nil
	}
	if doc[0] != '{' && doc[0] != '[' {
		v.add(field, "must be a JSON object or array")
		return nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, doc); err != nil {
		v.add(field, "must be valid JSON")
		return nil
	}
	return datatypes.JSON(compact.Bytes())
}

// parseList validates a JSON array column such as tags or embeddings.
func parseList[T any](v *validator, field string, raw json.RawMessage) datatypes.JSONSlice[T] {
	doc, err := unwrapStringified(raw)
	if err != nil {
		v.add(field, err.Error())
		return nil
	}
	if isNull(doc) {
		return nil
	}
	var items []T
	if err := json.Unmarshal(doc, &items); err != nil {
		v.add(field, "must be an array of "+elementKind[T]())
		return nil
	}
	return datatypes.JSONSlice[T](items)
}

func elementKind[T any]() string {
	var zero T
	switch any(zero).(type) {
	case string:
		return "strings"
	case float64:
		return "numbers"
	default:
		return "values"
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
