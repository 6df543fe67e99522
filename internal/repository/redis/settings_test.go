package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ignite/email-domain-filter/internal/repository/redis"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*redis.SettingsRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redis.NewSettingsRepo(client, ""), mr
}

func TestSettingsRepo_RoundTrip(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "excluded_email_domains")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "excluded_email_domains", "example.com\nspam.test"))

	v, found, err := repo.Get(ctx, "excluded_email_domains")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "example.com\nspam.test", v)
	assert.Equal(t, "example.com\nspam.test", mr.HGet(redis.DefaultHashKey, "excluded_email_domains"))
}

func TestSettingsRepo_StoredEmptyIsFound(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "excluded_email_domains", ""))

	v, found, err := repo.Get(ctx, "excluded_email_domains")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "", v)
}

func TestSettingsRepo_Ping(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.Ping(ctx))

	mr.Close()
	assert.Error(t, repo.Ping(ctx))
}
