package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect("not a url")
	assert.ErrorContains(t, err, "invalid redis url")
}

func TestClient_Incr(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	client, err := Connect(url)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	key := "shopadmin:test:" + uuid.NewString()

	count, ttl, err := client.Incr(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, ttl)

	count, ttl, err = client.Incr(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.True(t, ttl > 0 && ttl <= time.Minute)
}

func TestClient_IncrRepairsMissingExpiry(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	client, err := Connect(url)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	key := "shopadmin:test:" + uuid.NewString()
	require.NoError(t, client.rdb.Set(ctx, key, 3, 0).Err())
	defer client.rdb.Del(ctx, key)

	count, ttl, err := client.Incr(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.Equal(t, time.Minute, ttl)

	stored, err := client.rdb.PTTL(ctx, key).Result()
	require.NoError(t, err)
	assert.True(t, stored > 0, "expiry was not restored")
	assert.NoError(t, client.Ping(ctx))
}
