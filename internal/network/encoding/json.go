// Package encoding wraps the json codec used across the app so decode failures carry a common sentinel.
package encoding

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"
)

var (
	ErrDecodeJSON = errors.New("failed to decode JSON")
	ErrEncodeJSON = errors.New("failed to encode JSON")
)

// DecodeBytes decodes a complete document. Trailing data after the first value is an error.
func DecodeBytes[T any](body []byte) (T, error) {
	var value T
	decoder := json.NewDecoder(bytes.NewReader(body))
	if err := decoder.Decode(&value); err != nil {
		return value, errors.Join(err, ErrDecodeJSON)
	}

	if decoder.More() {
		return value, errors.Join(errors.New("trailing data after document"), ErrDecodeJSON)
	}

	return value, nil
}

func MarshalJSON(value any) ([]byte, error) {
	body, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, errors.Join(err, ErrEncodeJSON)
	}

	return body, nil
}
