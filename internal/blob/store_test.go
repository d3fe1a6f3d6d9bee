package blob

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (failingStore) Put(context.Context, string, []byte) error { return errors.New("disk on fire") }
func (failingStore) Ping(context.Context) error                { return errors.New("disk on fire") }

func TestLoadMissingKeyReturnsDefault(t *testing.T) {
	s := NewMemStore()
	got := Load(context.Background(), s, zap.NewNop(), "nope", map[string]int{"d": 1})
	assert.Equal(t, map[string]int{"d": 1}, got)
}

func TestLoadCorruptDocumentReturnsDefault(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Put(context.Background(), KeyCart, []byte("{not json")))

	got := Load(context.Background(), s, zap.NewNop(), KeyCart, map[string]int{})
	assert.Empty(t, got)
}

func TestLoadStorageErrorReturnsDefault(t *testing.T) {
	got := Load(context.Background(), failingStore{}, zap.NewNop(), KeyOrders, []string{"fallback"})
	assert.Equal(t, []string{"fallback"}, got)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	s := NewMemStore()
	Save(context.Background(), s, zap.NewNop(), KeyCart, map[string]int{"p1": 3})

	got := Load(context.Background(), s, zap.NewNop(), KeyCart, map[string]int{})
	assert.Equal(t, map[string]int{"p1": 3}, got)
}

func TestSaveSwallowsWriteFailure(t *testing.T) {
	// Must not panic or surface the error.
	Save(context.Background(), failingStore{}, zap.NewNop(), KeyCart, map[string]int{"p1": 1})
}

func TestFileStoreRoundTripAndReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), KeyCatalog, []byte(`["x"]`)))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	raw, ok, err := reopened.Get(context.Background(), KeyCatalog)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["x"]`, string(raw))
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = s.Get(context.Background(), "../escape")
	assert.Error(t, err)
	assert.Error(t, s.Put(context.Background(), "a/b", nil))
}

func TestSQLStoreRoundTrip(t *testing.T) {
	s, err := OpenSQLStore("memory://")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	_, ok, err := s.Get(ctx, KeySession)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, KeySession, []byte(`{"role":"admin"}`)))
	require.NoError(t, s.Put(ctx, KeySession, []byte(`{"role":"customer"}`)))

	raw, ok, err := s.Get(ctx, KeySession)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"role":"customer"}`, string(raw))
}
