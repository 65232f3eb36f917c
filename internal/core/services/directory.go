package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
)

// Ensure DirectoryService implements the interface.
var _ driving.DirectoryService = (*DirectoryService)(nil)

// keyDirectoryMembers lists members configured as "id:name" entries.
const keyDirectoryMembers = "directory.members"

// DirectoryService manages the mention directory. Members come from the
// member store, followed by any configured in the config file.
type DirectoryService struct {
	store       driven.MemberStore
	configStore driven.ConfigStore
}

// NewDirectoryService creates a directory service. configStore may be nil.
func NewDirectoryService(store driven.MemberStore, configStore driven.ConfigStore) *DirectoryService {
	return &DirectoryService{store: store, configStore: configStore}
}

// List returns stored members followed by configured ones. A stored
// member shadows a configured member with the same ID.
func (s *DirectoryService) List(ctx context.Context) ([]domain.Mention, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		seen[m.ID] = true
	}
	for _, m := range s.configured() {
		if !seen[m.ID] {
			seen[m.ID] = true
			members = append(members, m)
		}
	}
	return members, nil
}

// Add stores a member.
func (s *DirectoryService) Add(ctx context.Context, member domain.Mention) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	member.ID = strings.TrimSpace(member.ID)
	member.Name = strings.TrimSpace(member.Name)
	if member.ID == "" || member.Name == "" {
		return fmt.Errorf("%w: member needs an id and a name", domain.ErrInvalidInput)
	}
	return s.store.SaveMember(ctx, member)
}

// Remove deletes a stored member. Configured members can only be removed
// from the config file.
func (s *DirectoryService) Remove(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	err := s.store.DeleteMember(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		for _, m := range s.configured() {
			if m.ID == id {
				return fmt.Errorf("%w: member %s is set in %s", domain.ErrInvalidInput, id, s.configStore.Path())
			}
		}
	}
	return err
}

// Search returns members whose name starts with prefix, ignoring case.
func (s *DirectoryService) Search(ctx context.Context, prefix string) ([]domain.Mention, error) {
	members, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	p := strings.ToLower(strings.TrimPrefix(prefix, "@"))
	var out []domain.Mention
	for _, m := range members {
		if strings.HasPrefix(strings.ToLower(m.Name), p) {
			out = append(out, m)
		}
	}
	return out, nil
}

// configured parses the "id:name" entries of the config file. Malformed
// entries are skipped.
func (s *DirectoryService) configured() []domain.Mention {
	if s.configStore == nil {
		return nil
	}
	var out []domain.Mention
	for _, entry := range s.configStore.GetStringSlice(keyDirectoryMembers) {
		id, name, ok := strings.Cut(entry, ":")
		id, name = strings.TrimSpace(id), strings.TrimSpace(name)
		if !ok || id == "" || name == "" {
			continue
		}
		out = append(out, domain.Mention{ID: id, Name: name})
	}
	return out
}
