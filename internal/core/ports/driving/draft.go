package driving

import (
	"context"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// DraftService manages composer drafts.
type DraftService interface {
	// Save stores value as the draft for channel, replacing any previous one.
	Save(ctx context.Context, channel, value string) (*domain.Draft, error)

	// Autosave saves like Save unless the previous save for the channel
	// was too recent. It reports whether the draft was written.
	Autosave(ctx context.Context, channel, value string) (bool, error)

	// Get retrieves a draft by ID.
	Get(ctx context.Context, id string) (*domain.Draft, error)

	// ForChannel retrieves the draft for a channel.
	ForChannel(ctx context.Context, channel string) (*domain.Draft, error)

	// List returns all drafts, most recently updated first.
	List(ctx context.Context) ([]domain.Draft, error)

	// Delete removes a draft.
	Delete(ctx context.Context, id string) error

	// Discard removes the draft for a channel, if any.
	Discard(ctx context.Context, channel string) error
}
