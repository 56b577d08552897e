package redisconn

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConn_ClientIsShared(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	conn := New(&redis.Options{Addr: server.Addr()})
	defer conn.Close()

	first := conn.Client()
	second := conn.Client()
	assert.Same(t, first, second)

	require.NoError(t, first.Ping(context.Background()).Err())
}

func TestConn_CloseWithoutUse(t *testing.T) {
	conn := New(&redis.Options{Addr: "localhost:6379"})
	assert.NoError(t, conn.Close())
}
