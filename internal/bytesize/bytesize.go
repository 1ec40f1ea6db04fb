// Package bytesize parses and formats human-readable byte sizes.
//
// Configuration values such as chunk sizes, chunking thresholds, and cache
// memory budgets are expressed as strings like "16Ki", "80Ki", or "4MB" and
// decoded into ByteSize values.
package bytesize

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ByteSize is a size in bytes that unmarshals from human-readable strings
// like "16Ki", "80KiB", "4MB", or plain numbers.
//
// Supported suffixes:
//   - Binary units (x1024): Ki/KiB, Mi/MiB, Gi/GiB, Ti/TiB
//   - Decimal units (x1000): K/KB, M/MB, G/GB, T/TB
//   - Bytes: B or no suffix
type ByteSize uint64

// Common byte size constants.
const (
	B  ByteSize = 1
	KB ByteSize = 1000
	MB ByteSize = 1000 * KB
	GB ByteSize = 1000 * MB
	TB ByteSize = 1000 * GB

	KiB ByteSize = 1024
	MiB ByteSize = 1024 * KiB
	GiB ByteSize = 1024 * MiB
	TiB ByteSize = 1024 * GiB
)

// multiplierFor maps a normalized lowercase suffix to its byte multiplier.
func multiplierFor(unit string) (ByteSize, bool) {
	switch unit {
	case "", "b":
		return B, true
	case "k", "kb":
		return KB, true
	case "m", "mb":
		return MB, true
	case "g", "gb":
		return GB, true
	case "t", "tb":
		return TB, true
	case "ki", "kib":
		return KiB, true
	case "mi", "mib":
		return MiB, true
	case "gi", "gib":
		return GiB, true
	case "ti", "tib":
		return TiB, true
	default:
		return 0, false
	}
}

// Parse parses a human-readable byte size string into a ByteSize value.
// It accepts formats like "16Ki", "80KiB", "4MB", "1024", and fractional
// values like "1.5Mi".
func Parse(s string) (ByteSize, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	// Split the numeric prefix from the unit suffix.
	split := len(trimmed)
	for i, r := range trimmed {
		if !unicode.IsDigit(r) && r != '.' {
			split = i
			break
		}
	}

	numStr := trimmed[:split]
	unit := strings.ToLower(strings.TrimSpace(trimmed[split:]))
	if numStr == "" {
		return 0, fmt.Errorf("invalid byte size format: %q", s)
	}

	multiplier, ok := multiplierFor(unit)
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit: %q", trimmed[split:])
	}

	if strings.Contains(numStr, ".") {
		num, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number in byte size: %q", numStr)
		}
		return ByteSize(num * float64(multiplier)), nil
	}

	num, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in byte size: %q", numStr)
	}
	return ByteSize(num) * multiplier, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so ByteSize fields can be
// decoded directly from config files.
func (b *ByteSize) UnmarshalText(text []byte) error {
	size, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = size
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// String returns a human-readable representation using binary units.
func (b ByteSize) String() string {
	switch {
	case b >= TiB:
		return fmt.Sprintf("%.2fTiB", float64(b)/float64(TiB))
	case b >= GiB:
		return fmt.Sprintf("%.2fGiB", float64(b)/float64(GiB))
	case b >= MiB:
		return fmt.Sprintf("%.2fMiB", float64(b)/float64(MiB))
	case b >= KiB:
		return fmt.Sprintf("%.2fKiB", float64(b)/float64(KiB))
	default:
		return fmt.Sprintf("%dB", uint64(b))
	}
}

// Uint64 returns the size as a uint64.
func (b ByteSize) Uint64() uint64 {
	return uint64(b)
}

// Int returns the size as an int. Values that do not fit are clipped to the
// maximum int, which is far beyond any valid chunk or budget size.
func (b ByteSize) Int() int {
	const maxInt = int(^uint(0) >> 1)
	if uint64(b) > uint64(maxInt) {
		return maxInt
	}
	return int(b)
}
