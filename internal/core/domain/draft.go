package domain

import "time"

// Draft is a persisted composer value for a channel.
type Draft struct {
	// ID is the unique identifier for the draft.
	ID string

	// Channel is the conversation the draft belongs to.
	// At most one draft exists per channel.
	Channel string

	// Value is the serialised composer value.
	Value string

	// Preview is the plain-text rendering of Value.
	Preview string

	// Mentions lists the members referenced by the draft.
	Mentions []Mention

	// CreatedAt is when the draft was first saved.
	CreatedAt time.Time

	// UpdatedAt is when the draft was last saved.
	UpdatedAt time.Time
}
