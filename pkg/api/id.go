package api

import "github.com/google/uuid"

// NewMessageID generates the identifier carried by a Started event.
func NewMessageID() string {
	return uuid.NewString()
}
