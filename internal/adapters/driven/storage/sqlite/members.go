package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
)

// memberStore implements driven.MemberStore.
type memberStore struct {
	store *Store
}

var _ driven.MemberStore = (*memberStore)(nil)

// SaveMember stores or updates a member. An update keeps the member's
// position in the directory.
func (s *memberStore) SaveMember(ctx context.Context, member domain.Mention) error {
	if member.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO members (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, member.ID, member.Name)
	if err != nil {
		return fmt.Errorf("saving member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID.
func (s *memberStore) GetMember(ctx context.Context, id string) (*domain.Mention, error) {
	var member domain.Mention
	err := s.store.db.QueryRowContext(ctx, `SELECT id, name FROM members WHERE id = ?`, id).
		Scan(&member.ID, &member.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning member: %w", err)
	}
	return &member, nil
}

// DeleteMember removes a member.
func (s *memberStore) DeleteMember(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListMembers returns all members in the order they were added.
func (s *memberStore) ListMembers(ctx context.Context) ([]domain.Mention, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT id, name FROM members ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []domain.Mention
	for rows.Next() {
		var m domain.Mention
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
