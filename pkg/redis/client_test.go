package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClientSetGetDel(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyVideoByID("v1")
	require.NoError(t, client.Set(ctx, key, "payload", time.Minute))

	val, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "payload", val)

	require.NoError(t, client.Del(ctx, key))

	_, err = client.Get(ctx, key)
	assert.True(t, IsCacheMiss(err))
}

func TestClientExistsAndIncr(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyVideoViews("v1")

	n, err := client.Exists(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	total, err := client.IncrBy(ctx, key, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	total, err = client.IncrBy(ctx, key, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	n, err = client.Exists(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestClientHealth(t *testing.T) {
	client := newTestClient(t)
	assert.NoError(t, client.Health(context.Background()))
}

func TestIsCacheMissOnlyMatchesNil(t *testing.T) {
	assert.False(t, IsCacheMiss(nil))
	assert.False(t, IsCacheMiss(context.Canceled))
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("not-a-url", "test", zap.NewNop())
	assert.Error(t, err)
}
