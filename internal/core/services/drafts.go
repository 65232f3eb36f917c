package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
	"github.com/custodia-labs/composer/internal/logger"
)

// Ensure DraftService implements the interface.
var _ driving.DraftService = (*DraftService)(nil)

// DraftService stores composer values per channel. Autosaves are
// throttled per channel with a token bucket holding one save.
type DraftService struct {
	store      driven.DraftStore
	conversion driving.ConversionService
	interval   time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

// NewDraftService creates a draft service. interval is the minimum gap
// between two autosaves of the same channel.
func NewDraftService(store driven.DraftStore, conversion driving.ConversionService, interval time.Duration) *DraftService {
	return &DraftService{
		store:      store,
		conversion: conversion,
		interval:   interval,
		limiters:   make(map[string]*rate.Limiter),
		now:        time.Now,
	}
}

// Save stores value as the draft for channel. A value with no content
// discards the draft instead and returns nil.
func (s *DraftService) Save(ctx context.Context, channel, value string) (*domain.Draft, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return nil, fmt.Errorf("%w: draft channel is required", domain.ErrInvalidInput)
	}

	doc := s.conversion.Load(value)
	preview, err := s.conversion.Encode(doc, domain.FormatPlain)
	if err != nil {
		return nil, fmt.Errorf("draft preview: %w", err)
	}
	if strings.TrimSpace(preview) == "" && len(doc.Mentions()) == 0 {
		return nil, s.Discard(ctx, channel)
	}

	now := s.now()
	draft := &domain.Draft{
		ID:        uuid.New().String(),
		Channel:   channel,
		Value:     value,
		Preview:   preview,
		Mentions:  doc.Mentions(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	existing, err := s.store.GetDraftByChannel(ctx, channel)
	switch {
	case err == nil:
		draft.ID = existing.ID
		draft.CreatedAt = existing.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("load draft for %s: %w", channel, err)
	}

	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	logger.Debug("saved draft %s for channel %s", draft.ID, channel)
	return draft, nil
}

// Autosave saves unless the channel was saved within the interval.
func (s *DraftService) Autosave(ctx context.Context, channel, value string) (bool, error) {
	if !s.limiter(channel).AllowN(s.now(), 1) {
		logger.Debug("autosave for %s throttled", channel)
		return false, nil
	}
	if _, err := s.Save(ctx, channel, value); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DraftService) limiter(channel string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.limiters[channel]
	if !ok {
		limit := rate.Inf
		if s.interval > 0 {
			limit = rate.Every(s.interval)
		}
		lim = rate.NewLimiter(limit, 1)
		s.limiters[channel] = lim
	}
	return lim
}

// Get retrieves a draft by ID.
func (s *DraftService) Get(ctx context.Context, id string) (*domain.Draft, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.GetDraft(ctx, id)
}

// ForChannel retrieves the draft for a channel.
func (s *DraftService) ForChannel(ctx context.Context, channel string) (*domain.Draft, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.GetDraftByChannel(ctx, channel)
}

// List returns all drafts, most recently updated first.
func (s *DraftService) List(ctx context.Context) ([]domain.Draft, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListDrafts(ctx)
}

// Delete removes a draft.
func (s *DraftService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	draft, err := s.store.GetDraft(ctx, id)
	if err != nil {
		return err
	}
	s.forget(draft.Channel)
	return s.store.DeleteDraft(ctx, id)
}

// Discard removes the draft for a channel. A channel without a draft is
// not an error.
func (s *DraftService) Discard(ctx context.Context, channel string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	draft, err := s.store.GetDraftByChannel(ctx, channel)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.forget(channel)
	return s.store.DeleteDraft(ctx, draft.ID)
}

func (s *DraftService) forget(channel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.limiters, channel)
}
