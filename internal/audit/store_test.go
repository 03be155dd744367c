// SPDX-License-Identifier: MIT

package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_InsertAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	events := []Event{
		{Type: EventConfigReload, Actor: "admin", Action: "reloaded configuration", Resource: "config", Result: "success"},
		{Type: EventAuthFailure, Actor: "10.0.0.1", Action: "authentication failed", Resource: "/api/config", Result: "failure",
			RemoteAddr: "10.0.0.1", Details: map[string]string{"reason": "invalid token"}},
		{Type: EventConfigReload, Actor: "system", Action: "reloaded configuration", Resource: "config", Result: "success"},
	}
	for _, ev := range events {
		require.NoError(t, store.Insert(ctx, ev))
	}

	got, err := store.Recent(ctx, 10, "")
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first
	assert.Equal(t, "system", got[0].Actor)
	assert.Equal(t, "10.0.0.1", got[1].Actor)
	assert.Equal(t, "admin", got[2].Actor)

	assert.Equal(t, map[string]string{"reason": "invalid token"}, got[1].Details)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestStore_RecentFiltersByType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, Event{Type: EventConfigReload, Actor: "a", Action: "x", Resource: "r", Result: "success"}))
	require.NoError(t, store.Insert(ctx, Event{Type: EventAuthSuccess, Actor: "b", Action: "y", Resource: "r", Result: "success"}))

	got, err := store.Recent(ctx, 10, EventAuthSuccess)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, EventAuthSuccess, got[0].Type)
}

func TestStore_RecentHonorsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.Insert(ctx, Event{Type: EventAPIAccess, Actor: "a", Action: "x", Resource: "r", Result: "success"}))
	}

	got, err := store.Recent(ctx, 4, "")
	require.NoError(t, err)
	assert.Len(t, got, 4)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, n)
}

func TestStore_InsertPreservesTimestamp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, Event{
		Timestamp: ts,
		Type:      EventConfigSave,
		Actor:     "admin",
		Action:    "saved configuration document",
		Resource:  "/etc/geowatch/config.json",
		Result:    "success",
	}))

	got, err := store.Recent(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Timestamp.Equal(ts))
}

func TestVerifyIntegrity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(context.Background(), Event{Type: EventConfigReload, Actor: "a", Action: "x", Resource: "r", Result: "success"}))
	require.NoError(t, store.Close())

	problems, err := VerifyIntegrity(path, "quick")
	require.NoError(t, err)
	assert.Nil(t, problems)

	problems, err = VerifyIntegrity(path, "full")
	require.NoError(t, err)
	assert.Nil(t, problems)
}

func TestLogger_WithStorePersists(t *testing.T) {
	store := newTestStore(t)

	logger := NewLogger().WithStore(store)
	logger.ConfigReload("admin", "success", map[string]string{"restart_required": "false"})
	logger.AuthFailure("10.0.0.9", "/api/config/reload", "invalid token")

	got, err := store.Recent(context.Background(), 10, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, EventAuthFailure, got[0].Type)
	assert.Equal(t, EventConfigReload, got[1].Type)
}
