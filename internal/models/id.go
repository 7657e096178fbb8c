package models

import "github.com/google/uuid"

// NewID returns a fresh record identifier. Version 7 UUIDs start with a
// millisecond timestamp followed by random bits.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
