// In file: internal/store/store_test.go
package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	return s
}

func TestStore_CreateAndLookupUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "alice", "hash123")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	user, err := s.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash123", user.PasswordHash)
	assert.False(t, user.IsAdmin)
}

func TestStore_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "hash1")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice", "hash2")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestStore_UnknownUser(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStore_HistoryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID, err := s.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	require.NoError(t, s.LogRequest(ctx, "req_1", userID, "first prompt"))
	require.NoError(t, s.LogRequest(ctx, "req_2", userID, "second prompt"))
	require.NoError(t, s.LogResponse(ctx, "req_2", map[string]any{"final_answer": "hi"}, 0.42))

	history, err := s.UserHistory(ctx, userID, 50, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first.
	assert.Equal(t, "req_2", history[0].ID)
	assert.Equal(t, "second prompt", history[0].Prompt)
	assert.Equal(t, 0.42, history[0].ProcessingTime)
	assert.Equal(t, "hi", history[0].Response["final_answer"])

	assert.Equal(t, "req_1", history[1].ID)
	assert.Nil(t, history[1].Response)
}

func TestStore_HistoryPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID, err := s.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	for _, id := range []string{"req_1", "req_2", "req_3"} {
		require.NoError(t, s.LogRequest(ctx, id, userID, "prompt "+id))
	}

	page, err := s.UserHistory(ctx, userID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = s.UserHistory(ctx, userID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestStore_HistoryIsolatedPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	bob, err := s.CreateUser(ctx, "bob", "hash")
	require.NoError(t, err)

	require.NoError(t, s.LogRequest(ctx, "req_a", alice, "alice's prompt"))
	require.NoError(t, s.LogRequest(ctx, "req_b", bob, "bob's prompt"))

	history, err := s.UserHistory(ctx, alice, 50, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "req_a", history[0].ID)
}

func TestStore_Counters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID, err := s.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	require.NoError(t, s.LogRequest(ctx, "req_1", userID, "prompt"))

	total, err := s.TotalUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	today, err := s.RequestsToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), today)

	active, err := s.ActiveUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)

	status := s.Status(ctx)
	assert.Equal(t, int64(1), status["total_users"])
}
