package settings

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo is an in-memory repository for testing.
type mockRepo struct {
	mu     sync.RWMutex
	store  map[string]string
	getErr error
	setErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[string]string)}
}

func (m *mockRepo) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.store[key]
	return v, ok, nil
}

func (m *mockRepo) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.store[key] = value
	return nil
}

func TestGetExcludedDomains_DefaultsToEmpty(t *testing.T) {
	svc := NewService(newMockRepo())

	got, err := svc.GetExcludedDomains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSetExcludedDomains_StoresVerbatim(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	raw := "  example.com\r\nnot a domain!!\n\n"
	require.NoError(t, svc.SetExcludedDomains(ctx, raw))

	got, err := svc.GetExcludedDomains(ctx)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Equal(t, raw, repo.store[KeyExcludedDomains])
}

func TestSetExcludedDomains_Overwrites(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	require.NoError(t, svc.SetExcludedDomains(ctx, "a.test"))
	require.NoError(t, svc.SetExcludedDomains(ctx, ""))

	got, err := svc.GetExcludedDomains(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	repo := newMockRepo()
	repo.getErr = boom
	repo.setErr = boom
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.GetExcludedDomains(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.SetExcludedDomains(ctx, "x"), boom)
}

func TestPing_WithoutPingerSucceeds(t *testing.T) {
	assert.NoError(t, NewService(newMockRepo()).Ping(context.Background()))
}
