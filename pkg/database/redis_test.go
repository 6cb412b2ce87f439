package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, url := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		client, err := NewRedisClient(context.Background(), url)
		require.NoError(t, err, url)
		assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
		client.Close()
	}
}

func TestNewRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := NewRedisClient(context.Background(), addr)
	assert.Error(t, err)
	assert.Nil(t, client)
}
