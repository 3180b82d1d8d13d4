// Package env reads raw process environment values. It serves the few
// lookups that happen before the typed config has been parsed.
package env

import "os"

// Get returns the variable's value, or fallback when it is unset or
// blank.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
