package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/composer/internal/codecs/canonical"
	"github.com/custodia-labs/composer/internal/codecs/markup"
	"github.com/custodia-labs/composer/internal/codecs/plaintext"
	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/services"
)

func newConversion() *services.ConversionService {
	return services.NewConversionService(plaintext.New(), markup.New(), canonical.New())
}

// newTestServer builds a server over memory stores holding members.
func newTestServer(t *testing.T, members ...domain.Mention) (*Server, *Ports) {
	t.Helper()
	conversion := newConversion()
	ports := &Ports{
		Conversion: conversion,
		Directory:  services.NewDirectoryService(memory.NewMemberStore(members...), nil),
		Drafts:     services.NewDraftService(memory.NewDraftStore(), conversion, 0),
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server, ports
}

// mockDraftService fails every call with err.
type mockDraftService struct {
	err error
}

func (m *mockDraftService) Save(_ context.Context, _, _ string) (*domain.Draft, error) {
	return nil, m.err
}

func (m *mockDraftService) Autosave(_ context.Context, _, _ string) (bool, error) {
	return false, m.err
}

func (m *mockDraftService) Get(_ context.Context, _ string) (*domain.Draft, error) {
	return nil, m.err
}

func (m *mockDraftService) ForChannel(_ context.Context, _ string) (*domain.Draft, error) {
	return nil, m.err
}

func (m *mockDraftService) List(_ context.Context) ([]domain.Draft, error) {
	return nil, m.err
}

func (m *mockDraftService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDraftService) Discard(_ context.Context, _ string) error {
	return m.err
}
