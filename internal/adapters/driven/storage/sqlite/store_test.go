package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "composer.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.DraftStore().SaveDraft(context.Background(), &domain.Draft{
		ID: "d1", Channel: "general", Value: "kept",
	}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var version int
	require.NoError(t, second.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)

	draft, err := second.DraftStore().GetDraft(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "kept", draft.Value)
}

func TestStore_SchemaVersion(t *testing.T) {
	store := setupTestStore(t)

	v, err := store.SchemaVersion()

	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"010_late.up.sql":    {Data: []byte("")},
		"002_b.up.sql":       {Data: []byte("")},
		"002_b.down.sql":     {Data: []byte("")},
		"001_a.up.sql":       {Data: []byte("")},
		"readme.up.sql":      {Data: []byte("")},
		"003_c.unknown.file": {Data: []byte("")},
	}

	tests := []struct {
		name    string
		current int
		want    []string
	}{
		{"fresh database", 0, []string{"001_a.up.sql", "002_b.up.sql", "010_late.up.sql"}},
		{"partly migrated", 2, []string{"010_late.up.sql"}},
		{"up to date", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pending, err := pendingMigrations(fsys, tt.current)
			require.NoError(t, err)

			var names []string
			for _, m := range pending {
				names = append(names, m.name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestDraftStore_SaveAndGet(t *testing.T) {
	drafts := setupTestStore(t).DraftStore()
	ctx := context.Background()
	created := time.Date(2026, 5, 6, 7, 8, 9, 10, time.UTC)

	err := drafts.SaveDraft(ctx, &domain.Draft{
		ID:        "d1",
		Channel:   "general",
		Value:     `[{"type":"paragraph","children":[{"text":"hi"}]}]`,
		Preview:   "hi",
		Mentions:  []domain.Mention{{ID: "u1", Name: "ann"}},
		CreatedAt: created,
		UpdatedAt: created.Add(time.Minute),
	})
	require.NoError(t, err)

	draft, err := drafts.GetDraft(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "general", draft.Channel)
	assert.Equal(t, "hi", draft.Preview)
	assert.Equal(t, []domain.Mention{{ID: "u1", Name: "ann"}}, draft.Mentions)
	assert.True(t, created.Equal(draft.CreatedAt))
	assert.True(t, created.Add(time.Minute).Equal(draft.UpdatedAt))

	byChannel, err := drafts.GetDraftByChannel(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, "d1", byChannel.ID)
}

func TestDraftStore_Save_Invalid(t *testing.T) {
	drafts := setupTestStore(t).DraftStore()

	assert.ErrorIs(t, drafts.SaveDraft(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, drafts.SaveDraft(context.Background(), &domain.Draft{ID: "x"}), domain.ErrInvalidInput)
}

func TestDraftStore_Save_UpdateAndReplace(t *testing.T) {
	drafts := setupTestStore(t).DraftStore()
	ctx := context.Background()

	require.NoError(t, drafts.SaveDraft(ctx, &domain.Draft{ID: "d1", Channel: "general", Value: "one"}))
	require.NoError(t, drafts.SaveDraft(ctx, &domain.Draft{ID: "d1", Channel: "general", Value: "two"}))

	draft, err := drafts.GetDraft(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "two", draft.Value)
	assert.Nil(t, draft.Mentions)

	require.NoError(t, drafts.SaveDraft(ctx, &domain.Draft{ID: "d2", Channel: "general", Value: "three"}))

	_, err = drafts.GetDraft(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := drafts.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "d2", list[0].ID)
}

func TestDraftStore_NotFound(t *testing.T) {
	drafts := setupTestStore(t).DraftStore()
	ctx := context.Background()

	_, err := drafts.GetDraft(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = drafts.GetDraftByChannel(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, drafts.DeleteDraft(ctx, "missing"), domain.ErrNotFound)
}

func TestDraftStore_List_MostRecentFirst(t *testing.T) {
	drafts := setupTestStore(t).DraftStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, channel := range []string{"a", "b", "c"} {
		at := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, drafts.SaveDraft(ctx, &domain.Draft{
			ID: "d-" + channel, Channel: channel, Value: channel, CreatedAt: at, UpdatedAt: at,
		}))
	}

	list, err := drafts.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Channel)
	assert.Equal(t, "b", list[1].Channel)
	assert.Equal(t, "a", list[2].Channel)

	require.NoError(t, drafts.DeleteDraft(ctx, "d-b"))
	list, err = drafts.ListDrafts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemberStore_CRUD(t *testing.T) {
	members := setupTestStore(t).MemberStore()
	ctx := context.Background()

	require.NoError(t, members.SaveMember(ctx, domain.Mention{ID: "u1", Name: "ann"}))
	require.NoError(t, members.SaveMember(ctx, domain.Mention{ID: "u2", Name: "bob"}))
	require.NoError(t, members.SaveMember(ctx, domain.Mention{ID: "u1", Name: "anne"}))

	list, err := members.ListMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Mention{{ID: "u1", Name: "anne"}, {ID: "u2", Name: "bob"}}, list)

	member, err := members.GetMember(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "bob", member.Name)

	require.NoError(t, members.DeleteMember(ctx, "u2"))
	_, err = members.GetMember(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, members.DeleteMember(ctx, "u2"), domain.ErrNotFound)
}

func TestMemberStore_Save_RequiresID(t *testing.T) {
	members := setupTestStore(t).MemberStore()

	err := members.SaveMember(context.Background(), domain.Mention{Name: "ann"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
