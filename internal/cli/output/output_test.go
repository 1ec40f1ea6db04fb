package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "yaml", input: "yaml", want: FormatYAML},
		{name: "yml alias", input: "yml", want: FormatYAML},
		{name: "empty defaults to yaml", input: "", want: FormatYAML},
		{name: "json", input: "json", want: FormatJSON},
		{name: "JSON uppercase", input: "JSON", want: FormatJSON},
		{name: "whitespace trimmed", input: "  yaml  ", want: FormatYAML},
		{name: "invalid format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintJSON(t *testing.T) {
	data := struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}{Name: "slot1", Value: 42}

	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, data))

	assert.Contains(t, buf.String(), `"name": "slot1"`)
	assert.Contains(t, buf.String(), `"value": 42`)
}

func TestPrintYAML(t *testing.T) {
	data := struct {
		Name  string `yaml:"name"`
		Value int    `yaml:"value"`
	}{Name: "slot1", Value: 42}

	var buf bytes.Buffer
	require.NoError(t, PrintYAML(&buf, data))

	assert.Contains(t, buf.String(), "name: slot1")
	assert.Contains(t, buf.String(), "value: 42")
}

func TestSimpleTable(t *testing.T) {
	pairs := [][2]string{
		{"Path", "saves/slot1.json"},
		{"Size", "81920 bytes"},
	}

	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, pairs))

	out := buf.String()
	assert.Contains(t, out, "Path")
	assert.Contains(t, out, "saves/slot1.json")
	assert.Contains(t, out, "Size")
	assert.Contains(t, out, "81920 bytes")
}
