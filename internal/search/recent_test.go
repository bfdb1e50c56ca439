package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *MemoryRecents {
	return NewMemoryRecents(time.Minute)
}

func TestAddAndGetMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	require.NoError(t, s.Add(ctx, "u1", "dark mode"))
	require.NoError(t, s.Add(ctx, "u1", "export"))

	list, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"export", "dark mode"}, list)
}

func TestAddDeduplicatesMovingToFront(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	s.Add(ctx, "u1", "alpha")
	s.Add(ctx, "u1", "beta")
	s.Add(ctx, "u1", "alpha")

	list, _ := s.Get(ctx, "u1")
	assert.Equal(t, []string{"alpha", "beta"}, list)
}

func TestAddDeduplicatesCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	s.Add(ctx, "u1", "Dark Mode")
	s.Add(ctx, "u1", "dark mode")

	list, _ := s.Get(ctx, "u1")
	assert.Len(t, list, 1)
	assert.Equal(t, "dark mode", list[0])
}

func TestAddIgnoresBlankTerms(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	s.Add(ctx, "u1", "   ")
	list, _ := s.Get(ctx, "u1")
	assert.Empty(t, list)
}

func TestListIsCapped(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	for i := 0; i < MaxRecent+5; i++ {
		s.Add(ctx, "u1", fmt.Sprintf("term-%d", i))
	}
	list, _ := s.Get(ctx, "u1")
	require.Len(t, list, MaxRecent)
	assert.Equal(t, fmt.Sprintf("term-%d", MaxRecent+4), list[0])
}

func TestUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	s.Add(ctx, "u1", "mine")
	list, _ := s.Get(ctx, "u2")
	assert.Empty(t, list)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	s.Add(ctx, "u1", "bye")
	require.NoError(t, s.Clear(ctx, "u1"))
	list, _ := s.Get(ctx, "u1")
	assert.Empty(t, list)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	s.Add(ctx, "u1", "one")
	list, _ := s.Get(ctx, "u1")
	list[0] = "mutated"

	fresh, _ := s.Get(ctx, "u1")
	assert.Equal(t, "one", fresh[0])
}
