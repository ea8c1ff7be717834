package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FormatAnswer renders a stored answer value to its canonical
// human-readable string, used identically for the detail view and as the
// CSV cell base value. Mapping-shaped answers render as "key: value" pairs
// joined by ", " in the value's own key order; lists join their elements;
// scalars render plainly. Delimiter escaping is the CSV writer's job, not
// the formatter's.
func FormatAnswer(raw json.RawMessage, qt QuestionType) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	switch trimmed[0] {
	case '{':
		pairs, err := decodeOrderedObject(trimmed)
		if err != nil {
			return string(trimmed)
		}
		parts := make([]string, len(pairs))
		for i, p := range pairs {
			parts[i] = p.key + ": " + FormatAnswer(p.value, qt)
		}
		return strings.Join(parts, ", ")
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return string(trimmed)
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = FormatAnswer(e, qt)
		}
		return strings.Join(parts, ", ")
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return string(trimmed)
		}
		return s
	default:
		if bytes.Equal(trimmed, []byte("true")) || bytes.Equal(trimmed, []byte("false")) {
			return string(trimmed)
		}
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return string(trimmed)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// CSVCell is the value written into a CSV cell for an answer. It equals
// the canonical string; quoting per RFC 4180 happens in encoding/csv.
func CSVCell(raw json.RawMessage, qt QuestionType) string {
	return FormatAnswer(raw, qt)
}

type jsonPair struct {
	key   string
	value json.RawMessage
}

// decodeOrderedObject walks an object token by token so the insertion
// order of keys survives, which map decoding would destroy.
func decodeOrderedObject(raw []byte) ([]jsonPair, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	var pairs []jsonPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		pairs = append(pairs, jsonPair{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return pairs, nil
}

// DecodeAnswerMap decodes a mapping-shaped answer into string keys and
// string values, tolerating non-string values by formatting them.
func DecodeAnswerMap(raw json.RawMessage) (map[string]string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	pairs, err := decodeOrderedObject(trimmed)
	if err != nil {
		return nil, false
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		var s string
		if err := json.Unmarshal(p.value, &s); err != nil {
			s = FormatAnswer(p.value, "")
		}
		out[p.key] = s
	}
	return out, true
}
