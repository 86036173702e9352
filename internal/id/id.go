// Package id generates prefixed identifiers for catalog records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// size is the random portion of every identifier. 21 characters of the
// default NanoID alphabet carries about 126 bits of entropy.
const size = 21

// Generate returns a new identifier of the form "<prefix>-<nanoid>", e.g.
// "book-V1StGXR8_Z5jdHi6B-myT". The prefix makes identifiers self-describing
// in logs and API responses.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New(size)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// MustGenerate is Generate for callers that cannot meaningfully recover from
// an entropy failure.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(err)
	}
	return id
}
