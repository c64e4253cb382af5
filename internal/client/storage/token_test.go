package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/exchangeclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

func newSQLiteStore(t *testing.T) *SQLiteTokenStore {
	t.Helper()
	db, err := OpenDatabase(context.Background(), InMemoryDSN, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteTokenStore(metadata.NewSQLiteRepository(db))
}

func TestTokenStores_Contract(t *testing.T) {
	stores := map[string]func(t *testing.T) TokenStore{
		"sqlite": func(t *testing.T) TokenStore { return newSQLiteStore(t) },
		"memory": func(t *testing.T) TokenStore { return NewMemoryTokenStore("") },
	}

	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			s := mk(t)
			ctx := context.Background()

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, got, "empty store must report no token")

			require.NoError(t, s.Set(ctx, "Bearer t1"))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Bearer t1", got)

			require.NoError(t, s.Set(ctx, "Bearer t2"))
			got, _ = s.Get(ctx)
			assert.Equal(t, "Bearer t2", got)

			require.NoError(t, s.Clear(ctx))
			require.NoError(t, s.Clear(ctx))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestSQLiteTokenStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	ctx := context.Background()

	db, err := OpenDatabase(ctx, path, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, NewSQLiteTokenStore(metadata.NewSQLiteRepository(db)).Set(ctx, "Bearer keep"))
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, path, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	got, err := NewSQLiteTokenStore(metadata.NewSQLiteRepository(db)).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer keep", got)
}

func TestSQLiteTokenStore_SetEmptyClears(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "Bearer x"))
	require.NoError(t, s.Set(ctx, ""))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

type failingRepo struct{ err error }

func (f failingRepo) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingRepo) Set(context.Context, string, []byte) error         { return f.err }
func (f failingRepo) Delete(context.Context, string) error              { return f.err }

func TestSQLiteTokenStore_WrapsRepositoryErrors(t *testing.T) {
	boom := errors.New("disk gone")
	s := NewSQLiteTokenStore(failingRepo{err: boom})
	ctx := context.Background()

	_, err := s.Get(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Set(ctx, "x"), boom)
	assert.ErrorIs(t, s.Clear(ctx), boom)
}
