// Package codec converts typed values to and from their textual file
// representation.
//
// Codecs are thin collaborators of the read/write facade: the facade encodes a
// value before handing it to the transfer engine, and decodes the text read
// back from storage. Raw-text operations bypass codecs entirely.
package codec

import "errors"

// Standard codec errors.
var (
	// ErrEncode indicates a value could not be serialized.
	ErrEncode = errors.New("value could not be encoded")

	// ErrDecode indicates file content could not be deserialized into the
	// requested type.
	ErrDecode = errors.New("content could not be decoded")
)

// Codec converts between typed values and text.
//
// Implementations must be stateless and safe for concurrent use.
type Codec interface {
	// Encode serializes a value to text.
	Encode(value any) (string, error)

	// Decode deserializes text into the value pointed to by out.
	Decode(text string, out any) error

	// Name returns the codec's short identifier (e.g. "json", "yaml").
	Name() string
}
