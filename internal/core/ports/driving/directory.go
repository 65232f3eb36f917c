package driving

import (
	"context"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// DirectoryService manages the members that can be mentioned.
type DirectoryService interface {
	// List returns the mention directory in display order.
	List(ctx context.Context) ([]domain.Mention, error)

	// Add stores a member.
	Add(ctx context.Context, member domain.Mention) error

	// Remove deletes a member by ID.
	Remove(ctx context.Context, id string) error

	// Search returns members whose name starts with prefix, ignoring case.
	Search(ctx context.Context, prefix string) ([]domain.Mention, error)
}
