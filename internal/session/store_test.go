package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	store := NewStore(t.TempDir())

	created, err := store.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Turns)

	loaded, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
}

func TestGetUnknownSession(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Get("nope")
	assert.Error(t, err)
}

func TestAppendPreservesOrder(t *testing.T) {
	store := NewStore(t.TempDir())
	created, err := store.Create()
	require.NoError(t, err)

	_, err = store.Append(created.ID, "user", "hello")
	require.NoError(t, err)
	updated, err := store.Append(created.ID, "assistant", "hi there")
	require.NoError(t, err)

	require.Len(t, updated.Turns, 2)
	assert.Equal(t, "user", updated.Turns[0].Role)
	assert.Equal(t, "hello", updated.Turns[0].Content)
	assert.Equal(t, "assistant", updated.Turns[1].Role)

	loaded, err := store.Get(created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Turns, 2)
}

func TestAllSkipsForeignFiles(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Create()
	require.NoError(t, err)
	_, err = store.Create()
	require.NoError(t, err)

	sessions, err := store.All()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestDurationMinutes(t *testing.T) {
	now := time.Now()
	sess := &Session{CreatedAt: now.Add(-10 * time.Minute), UpdatedAt: now}
	assert.Equal(t, 10, sess.DurationMinutes())

	sess = &Session{CreatedAt: now, UpdatedAt: now.Add(-time.Minute)}
	assert.Equal(t, 0, sess.DurationMinutes())
}
