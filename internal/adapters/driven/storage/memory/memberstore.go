package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
)

// Ensure MemberStore implements the interface.
var _ driven.MemberStore = (*MemberStore)(nil)

// MemberStore is an in-memory implementation of driven.MemberStore.
// Members keep the order they were first added in.
type MemberStore struct {
	mu      sync.RWMutex
	order   []string
	members map[string]domain.Mention
}

// NewMemberStore creates a member store holding members.
func NewMemberStore(members ...domain.Mention) *MemberStore {
	s := &MemberStore{members: make(map[string]domain.Mention)}
	for _, m := range members {
		_ = s.SaveMember(context.Background(), m)
	}
	return s
}

// SaveMember stores or updates a member.
func (s *MemberStore) SaveMember(_ context.Context, member domain.Mention) error {
	if member.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[member.ID]; !ok {
		s.order = append(s.order, member.ID)
	}
	s.members[member.ID] = member
	return nil
}

// GetMember retrieves a member by ID.
func (s *MemberStore) GetMember(_ context.Context, id string) (*domain.Mention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &member, nil
}

// DeleteMember removes a member.
func (s *MemberStore) DeleteMember(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.members, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListMembers returns all members in the order they were added.
func (s *MemberStore) ListMembers(_ context.Context) ([]domain.Mention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Mention, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.members[id])
	}
	return result, nil
}
