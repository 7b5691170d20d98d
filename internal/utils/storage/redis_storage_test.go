package storage

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set TEST_REDIS_ADDR (for example localhost:6379) to run against a live server.
func newTestRedisStorage(t *testing.T) *RedisStorage {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	s, err := NewRedisStorage(addr, "test:"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Reset()
		_ = s.Close()
	})
	return s
}

func TestRedisStorageRoundTrip(t *testing.T) {
	s := newTestRedisStorage(t)

	val, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set("hits", []byte("3"), time.Minute))
	val, err = s.Get("hits")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	require.NoError(t, s.Delete("hits"))
	val, err = s.Get("hits")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorageResetKeepsOtherPrefixes(t *testing.T) {
	s := newTestRedisStorage(t)
	other := NewRedisStorageFromClient(s.rdb, "other:"+uuid.NewString()+":")
	t.Cleanup(func() { _ = other.Reset() })

	require.NoError(t, s.Set("a", []byte("1"), time.Minute))
	require.NoError(t, other.Set("a", []byte("2"), time.Minute))

	require.NoError(t, s.Reset())

	val, err := s.Get("a")
	require.NoError(t, err)
	assert.Nil(t, val)

	val, err = other.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestNewRedisStorageRejectsBadURL(t *testing.T) {
	_, err := NewRedisStorage("redis://:bad:port/x", "p:")
	assert.Error(t, err)
}
