package driven

import (
	"context"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// MemberStore persists the mention directory.
type MemberStore interface {
	// SaveMember stores or updates a member.
	SaveMember(ctx context.Context, member domain.Mention) error

	// GetMember retrieves a member by ID.
	GetMember(ctx context.Context, id string) (*domain.Mention, error)

	// DeleteMember removes a member.
	DeleteMember(ctx context.Context, id string) error

	// ListMembers returns all members in directory order.
	ListMembers(ctx context.Context) ([]domain.Mention, error)
}
