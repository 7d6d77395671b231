package provider

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSONObject = errors.New("no JSON object in response")

// ExtractJSON достает JSON-объект из ответа модели. Сначала пробует
// разобрать ответ целиком, затем берет текст от первой '{' до последней '}'
// (модели любят оборачивать ответ в markdown или добавлять пояснения).
func ExtractJSON(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errNoJSONObject
	}
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, errNoJSONObject
	}
	candidate := []byte(trimmed[start : end+1])
	if !json.Valid(candidate) {
		return nil, errors.New("embedded JSON object is malformed")
	}
	return candidate, nil
}
