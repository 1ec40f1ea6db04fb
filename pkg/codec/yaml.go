package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML is a Codec backed by gopkg.in/yaml.v3. Useful for hand-edited save
// files where readability matters more than density.
type YAML struct{}

// Encode serializes a value to a YAML string.
func (YAML) Encode(value any) (string, error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrEncode, err)
	}
	return string(data), nil
}

// Decode deserializes a YAML string into out.
func (YAML) Decode(text string, out any) error {
	if err := yaml.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %s", ErrDecode, err)
	}
	return nil
}

// Name returns "yaml".
func (YAML) Name() string {
	return "yaml"
}

var _ Codec = YAML{}
