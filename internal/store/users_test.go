package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_InsertAndList(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id1, err := s.InsertUser(ctx, "Ana García", "agarcia")
	require.NoError(t, err)
	id2, err := s.InsertUser(ctx, "Luis Pérez", "lperez")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana García", users[0].Name)
	assert.Equal(t, "agarcia", users[0].Username)
	assert.Equal(t, "lperez", users[1].Username)
}

func TestUsers_ListEmpty(t *testing.T) {
	s := createTestStore(t)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUsers_Update(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.InsertUser(ctx, "Ana", "ana")
	require.NoError(t, err)

	require.NoError(t, s.UpdateUser(ctx, id, "Ana María", "amaria"))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana María", users[0].Name)
	assert.Equal(t, "amaria", users[0].Username)
}

func TestUsers_Delete(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.InsertUser(ctx, "Ana", "ana")
	require.NoError(t, err)
	require.NoError(t, s.DeleteUser(ctx, id))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUsers_MissingIDIsSilentNoOp(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	assert.NoError(t, s.UpdateUser(ctx, 42, "Nobody", "nobody"))
	assert.NoError(t, s.DeleteUser(ctx, 42))

	logs, err := s.ListLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs, "no-op mutations are not logged")
}
