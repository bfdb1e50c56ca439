package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/models"
)

func seed() []models.FeedbackItem {
	return []models.FeedbackItem{
		{ID: "a", Title: "Dark mode", VotesCount: 5},
		{ID: "b", Title: "Export to CSV", VotesCount: 0},
	}
}

func TestLoadReplacesWholesale(t *testing.T) {
	s := New()
	s.Load(seed())
	require.Equal(t, 2, s.Len())

	s.Load([]models.FeedbackItem{{ID: "c"}})
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestLoadCopiesInput(t *testing.T) {
	in := seed()
	s := New()
	s.Load(in)

	in[0].VotesCount = 99
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 5, got.VotesCount)
}

func TestApplyVote(t *testing.T) {
	s := New()
	s.Load(seed())

	s.ApplyVote("a", 1)
	got, _ := s.Get("a")
	assert.Equal(t, 6, got.VotesCount)

	s.ApplyVote("a", -1)
	got, _ = s.Get("a")
	assert.Equal(t, 5, got.VotesCount)
}

func TestApplyVoteClampsAtZero(t *testing.T) {
	s := New()
	s.Load(seed())

	s.ApplyVote("b", -1)
	got, _ := s.Get("b")
	assert.Equal(t, 0, got.VotesCount, "votes must never go negative")
}

func TestApplyVoteFloorHoldsOverAnySequence(t *testing.T) {
	s := New()
	s.Load(seed())

	deltas := []int{-1, -1, 1, -1, -1, -1, 1, 1, -1, -1, -1, -1}
	for _, d := range deltas {
		s.ApplyVote("b", d)
		got, _ := s.Get("b")
		assert.GreaterOrEqual(t, got.VotesCount, 0)
	}
}

func TestApplyVoteUnknownIDIsNoop(t *testing.T) {
	s := New()
	s.Load(seed())

	s.ApplyVote("nope", 1)
	assert.Equal(t, 2, s.Len())
	got, _ := s.Get("a")
	assert.Equal(t, 5, got.VotesCount)
}

func TestUpsertInsertsAndReplaces(t *testing.T) {
	s := New()
	s.Load(seed())

	s.Upsert(models.FeedbackItem{ID: "c", Title: "New idea"})
	require.Equal(t, 3, s.Len())

	s.Upsert(models.FeedbackItem{ID: "a", Title: "Dark mode v2", VotesCount: 7})
	assert.Equal(t, 3, s.Len())
	got, _ := s.Get("a")
	assert.Equal(t, "Dark mode v2", got.Title)
	assert.Equal(t, 7, got.VotesCount)
}

func TestRemove(t *testing.T) {
	s := New()
	s.Load(seed())

	s.Remove("a")
	assert.Equal(t, 1, s.Len())

	// removing an unknown id is not an error
	s.Remove("nope")
	assert.Equal(t, 1, s.Len())
}

func TestOptimisticCommitsOnSuccess(t *testing.T) {
	s := New()
	s.Load(seed())

	err := s.Optimistic("a", 1, func() error { return nil })
	require.NoError(t, err)
	got, _ := s.Get("a")
	assert.Equal(t, 6, got.VotesCount)
}

func TestOptimisticCompensatesOnFailure(t *testing.T) {
	s := New()
	s.Load(seed())

	boom := errors.New("backend rejected")
	err := s.Optimistic("a", 1, func() error { return boom })
	require.ErrorIs(t, err, boom)

	got, _ := s.Get("a")
	assert.Equal(t, 5, got.VotesCount, "failed confirmation must leave the count unchanged")
}

func TestOptimisticRollbackRespectsClamp(t *testing.T) {
	s := New()
	s.Load(seed())

	// -1 on a zero count changes nothing; its rollback must not invent a vote.
	err := s.Optimistic("b", -1, func() error { return errors.New("nope") })
	require.Error(t, err)

	got, _ := s.Get("b")
	assert.Equal(t, 0, got.VotesCount)
}

func TestOptimisticUnknownIDStillConfirms(t *testing.T) {
	s := New()
	s.Load(seed())

	called := false
	err := s.Optimistic("nope", 1, func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 2, s.Len())
}
