// Package textio reads shader sources from disk as UTF-8 text.
package textio

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadFile reads the whole file and decodes it with Decode.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	s, err := Decode(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return s, nil
}

// Decode converts b to UTF-8. A leading UTF-8 or UTF-16 byte order mark
// selects the encoding and is dropped; without one, b is taken as UTF-8 and
// invalid sequences become U+FFFD.
func Decode(b []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
