package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_BeginGetDelete(t *testing.T) {
	s := NewSessionStore(0)

	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Begin(1, "ETHUSDT", 3000, true)
	session, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, PhaseAwaitingTargetPrice, session.Phase)
	assert.Equal(t, "ETHUSDT", session.Symbol)
	assert.Equal(t, 3000.0, session.Current)
	assert.True(t, session.HasCurrent)
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Delete(1))
	assert.False(t, s.Delete(1))
	session, ok = s.Get(1)
	assert.False(t, ok)
	assert.Equal(t, PhaseIdle, session.Phase)
}

func TestSessionStore_TakeRemovesOnce(t *testing.T) {
	s := NewSessionStore(0)
	s.Begin(7, "BTCUSDT", 65000, true)

	session, ok := s.Take(7)
	require.True(t, ok)
	assert.Equal(t, "BTCUSDT", session.Symbol)

	session, ok = s.Take(7)
	assert.False(t, ok)
	assert.Equal(t, PhaseIdle, session.Phase)
	assert.Equal(t, 0, s.Len())
}

func TestSessionStore_BeginReplacesPending(t *testing.T) {
	s := NewSessionStore(0)
	s.Begin(1, "ETHUSDT", 3000, true)
	s.Begin(1, "BTCUSDT", 0, false)

	session, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "BTCUSDT", session.Symbol)
	assert.False(t, session.HasCurrent)
	assert.Equal(t, 1, s.Len())
}

func TestSessionStore_TTLExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore(time.Minute)
	s.now = func() time.Time { return now }

	s.Begin(1, "ETHUSDT", 3000, true)
	s.Begin(2, "BTCUSDT", 60000, true)

	now = now.Add(30 * time.Second)
	_, ok := s.Get(1)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = s.Get(1)
	assert.False(t, ok)
	assert.False(t, s.Delete(2))
	assert.Equal(t, 0, s.Len())
}

func TestSessionStore_ZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore(0)
	s.now = func() time.Time { return now }

	s.Begin(1, "ETHUSDT", 3000, true)
	now = now.Add(24 * time.Hour)

	_, ok := s.Get(1)
	assert.True(t, ok)
}
