package codec

import (
	"encoding/json"
	"fmt"
)

// JSON is a Codec backed by encoding/json. It is the default codec for the
// read/write facade.
type JSON struct{}

// Encode serializes a value to a JSON string.
func (JSON) Encode(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrEncode, err)
	}
	return string(data), nil
}

// Decode deserializes a JSON string into out.
func (JSON) Decode(text string, out any) error {
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %s", ErrDecode, err)
	}
	return nil
}

// Name returns "json".
func (JSON) Name() string {
	return "json"
}

var _ Codec = JSON{}
