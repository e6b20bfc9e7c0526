package sexp

import "regexp"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeName replaces every character outside [A-Za-z0-9_-] with '_'.
// An empty name yields fallback.
func SanitizeName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return unsafeNameChars.ReplaceAllString(name, "_")
}
