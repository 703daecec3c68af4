package session_test

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfront/session"
)

const tokenKey = "stayfront:session:token"

func TestChain_MemoryFirst(t *testing.T) {
	memory := session.NewMemory()
	memory.Set("in-memory-token")

	db, mock := redismock.NewClientMock()
	source := session.Chain(memory, session.NewRedisStore(db))

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "in-memory-token", token)

	// Redis must not be consulted when the in-memory session holds a token.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChain_FallsBackToPersistedToken(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(tokenKey).SetVal("persisted-token")

	source := session.Chain(session.NewMemory(), session.NewRedisStore(db))

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChain_NoTokenAnywhere(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(tokenKey).RedisNil()

	source := session.Chain(session.NewMemory(), session.NewRedisStore(db))

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRedisStore_SaveAndClear(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := session.NewRedisStore(db)
	ctx := context.Background()

	mock.ExpectSet(tokenKey, "fresh-token", 0).SetVal("OK")
	require.NoError(t, store.Save(ctx, "fresh-token"))

	mock.ExpectDel(tokenKey).SetVal(1)
	require.NoError(t, store.Clear(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}
