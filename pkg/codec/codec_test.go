package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saveState struct {
	Level  int            `json:"level" yaml:"level"`
	Name   string         `json:"name" yaml:"name"`
	Scores map[string]int `json:"scores" yaml:"scores"`
}

func TestRoundTrip(t *testing.T) {
	original := saveState{
		Level:  7,
		Name:   "slot-one",
		Scores: map[string]int{"a": 1, "b": 2},
	}

	for _, c := range []Codec{JSON{}, YAML{}} {
		t.Run(c.Name(), func(t *testing.T) {
			text, err := c.Encode(original)
			require.NoError(t, err)
			require.NotEmpty(t, text)

			var decoded saveState
			require.NoError(t, c.Decode(text, &decoded))
			assert.Equal(t, original, decoded)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	var out saveState

	err := JSON{}.Decode("{not json", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))

	err = YAML{}.Decode(":\n\t- broken", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestEncode_Unsupported(t *testing.T) {
	// Channels are not serializable by encoding/json.
	_, err := JSON{}.Encode(make(chan int))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEncode))
}

func TestDecode_WrongShape(t *testing.T) {
	var out saveState
	err := JSON{}.Decode(`["a","list"]`, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}
