package id

import "github.com/google/uuid"

// GenerateID creates a random (v4) UUID string used for sessions and question records.
func GenerateID() string {
	return uuid.NewString()
}

// Valid reports whether s parses as a UUID. Imported sessions may carry
// their own IDs; anything else gets a fresh one.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
