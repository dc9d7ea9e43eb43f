// Package id generates the opaque identifiers ScentDex hands out:
// catalog versions and image download runs.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Identifier prefixes.
const (
	PrefixCatalog = "cat"
	PrefixRun     = "run"
)

// Generate creates a prefixed NanoID such as "cat-V1StGXR8_Z5jdHi6B-myT".
// It fails only when the system has no entropy available.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics on failure.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
