package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
)

// Ensure DraftStore implements the interface.
var _ driven.DraftStore = (*DraftStore)(nil)

// DraftStore is an in-memory implementation of driven.DraftStore.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]domain.Draft
}

// NewDraftStore creates a new in-memory draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{
		drafts: make(map[string]domain.Draft),
	}
}

// SaveDraft stores or updates a draft. A draft saved for a channel that
// already has one under another ID replaces it.
func (s *DraftStore) SaveDraft(_ context.Context, draft *domain.Draft) error {
	if draft == nil || draft.ID == "" || draft.Channel == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range s.drafts {
		if d.Channel == draft.Channel && id != draft.ID {
			delete(s.drafts, id)
		}
	}
	stored := *draft
	stored.Mentions = append([]domain.Mention(nil), draft.Mentions...)
	s.drafts[draft.ID] = stored
	return nil
}

// GetDraft retrieves a draft by ID.
func (s *DraftStore) GetDraft(_ context.Context, id string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &draft, nil
}

// GetDraftByChannel retrieves the draft for a channel.
func (s *DraftStore) GetDraftByChannel(_ context.Context, channel string) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, draft := range s.drafts {
		if draft.Channel == channel {
			return &draft, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteDraft removes a draft.
func (s *DraftStore) DeleteDraft(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.drafts, id)
	return nil
}

// ListDrafts returns all drafts, most recently updated first.
func (s *DraftStore) ListDrafts(_ context.Context) ([]domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Draft, 0, len(s.drafts))
	for _, draft := range s.drafts {
		result = append(result, draft)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].Channel < result[j].Channel
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}
