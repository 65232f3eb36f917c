package driven

import (
	"context"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// DraftStore persists composer drafts.
// Backed by SQLite for local storage.
type DraftStore interface {
	// SaveDraft stores or updates a draft. Drafts are unique per channel.
	SaveDraft(ctx context.Context, draft *domain.Draft) error

	// GetDraft retrieves a draft by ID.
	GetDraft(ctx context.Context, id string) (*domain.Draft, error)

	// GetDraftByChannel retrieves the draft for a channel.
	GetDraftByChannel(ctx context.Context, channel string) (*domain.Draft, error)

	// DeleteDraft removes a draft.
	DeleteDraft(ctx context.Context, id string) error

	// ListDrafts returns all drafts, most recently updated first.
	ListDrafts(ctx context.Context) ([]domain.Draft, error)
}
