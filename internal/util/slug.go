// Package util provides small string helpers shared by the tooling.
package util

import (
	"regexp"
	"strings"
)

// nonAlphanumericRunRe matches every run of characters outside [a-z0-9].
var nonAlphanumericRunRe = regexp.MustCompile(`[^a-z0-9]+`)

// FileSlug turns a display name into a file-safe fragment.
//
// The name is lower-cased, every run of non [a-z0-9] characters becomes a
// single dash, and leading or trailing dashes are removed.
//
//	"Sauvage Elixir"        → "sauvage-elixir"
//	"L'Homme (2024) EDP"    → "l-homme-2024-edp"
//	"Eau de Cologne №4"     → "eau-de-cologne-4"
//	"!!!"                   → ""
func FileSlug(name string) string {
	s := strings.ToLower(name)
	s = nonAlphanumericRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
