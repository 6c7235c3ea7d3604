package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "peppertree/internal/errors"
)

// Encode serializes a record as pretty-printed JSON. HTML escaping is
// disabled so unicode text and slashes round-trip byte-for-byte; the files
// are meant to be readable by operators.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode deserializes a record, tagging malformed input with ErrParse so
// listers can skip corrupt files while direct reads surface the failure.
func Decode(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}
	return nil
}
