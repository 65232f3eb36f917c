package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
)

// draftStore implements driven.DraftStore.
type draftStore struct {
	store *Store
}

var _ driven.DraftStore = (*draftStore)(nil)

const draftColumns = `id, channel, value, preview, mentions, created_at, updated_at`

// SaveDraft stores or updates a draft. Another draft for the same channel
// is replaced.
func (s *draftStore) SaveDraft(ctx context.Context, draft *domain.Draft) error {
	if draft == nil || draft.ID == "" || draft.Channel == "" {
		return domain.ErrInvalidInput
	}
	mentions := draft.Mentions
	if mentions == nil {
		mentions = []domain.Mention{}
	}
	mentionsJSON, err := json.Marshal(mentions)
	if err != nil {
		return fmt.Errorf("marshalling mentions: %w", err)
	}

	now := time.Now().UTC()
	created, updated := draft.CreatedAt, draft.UpdatedAt
	if created.IsZero() {
		created = now
	}
	if updated.IsZero() {
		updated = now
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM drafts WHERE channel = ? AND id != ?`, draft.Channel, draft.ID); err != nil {
		return fmt.Errorf("replacing channel draft: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO drafts (`+draftColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			channel = excluded.channel,
			value = excluded.value,
			preview = excluded.preview,
			mentions = excluded.mentions,
			updated_at = excluded.updated_at
	`, draft.ID, draft.Channel, draft.Value, draft.Preview, string(mentionsJSON),
		created.UnixNano(), updated.UnixNano())
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return tx.Commit()
}

// GetDraft retrieves a draft by ID.
func (s *draftStore) GetDraft(ctx context.Context, id string) (*domain.Draft, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+draftColumns+` FROM drafts WHERE id = ?`, id)
	return scanDraft(row)
}

// GetDraftByChannel retrieves the draft for a channel.
func (s *draftStore) GetDraftByChannel(ctx context.Context, channel string) (*domain.Draft, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+draftColumns+` FROM drafts WHERE channel = ?`, channel)
	return scanDraft(row)
}

// DeleteDraft removes a draft.
func (s *draftStore) DeleteDraft(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListDrafts returns all drafts, most recently updated first.
func (s *draftStore) ListDrafts(ctx context.Context) ([]domain.Draft, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+draftColumns+` FROM drafts ORDER BY updated_at DESC, channel ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var drafts []domain.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *draft)
	}
	return drafts, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(row scanner) (*domain.Draft, error) {
	var draft domain.Draft
	var mentionsJSON string
	var created, updated int64
	if err := row.Scan(&draft.ID, &draft.Channel, &draft.Value, &draft.Preview,
		&mentionsJSON, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}
	if err := json.Unmarshal([]byte(mentionsJSON), &draft.Mentions); err != nil {
		return nil, fmt.Errorf("unmarshalling mentions: %w", err)
	}
	if len(draft.Mentions) == 0 {
		draft.Mentions = nil
	}
	draft.CreatedAt = time.Unix(0, created).UTC()
	draft.UpdatedAt = time.Unix(0, updated).UTC()
	return &draft, nil
}
