package thread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/models"
)

func ptr(s string) *string { return &s }

func TestBuildPartitionsTopLevelAndReplies(t *testing.T) {
	comments := []models.Comment{
		{ID: "a"},
		{ID: "b", ParentID: ptr("a")},
		{ID: "c"},
		{ID: "d", ParentID: ptr("c")},
		{ID: "e", ParentID: ptr("a")},
	}

	nodes := Build(comments)
	require.Len(t, nodes, 2)

	assert.Equal(t, "a", nodes[0].ID)
	require.Len(t, nodes[0].Replies, 2)
	assert.Equal(t, "b", nodes[0].Replies[0].ID)
	assert.Equal(t, "e", nodes[0].Replies[1].ID)

	assert.Equal(t, "c", nodes[1].ID)
	require.Len(t, nodes[1].Replies, 1)
	assert.Equal(t, "d", nodes[1].Replies[0].ID)
}

func TestBuildDropsReplyToReply(t *testing.T) {
	// C answers B, which is itself a reply; the two-level display has no
	// slot for it and it disappears from every thread.
	comments := []models.Comment{
		{ID: "A"},
		{ID: "B", ParentID: ptr("A")},
		{ID: "C", ParentID: ptr("B")},
	}

	nodes := Build(comments)
	require.Len(t, nodes, 1)
	assert.Equal(t, "A", nodes[0].ID)
	require.Len(t, nodes[0].Replies, 1)
	assert.Equal(t, "B", nodes[0].Replies[0].ID)
}

func TestBuildDropsOrphanReplies(t *testing.T) {
	comments := []models.Comment{
		{ID: "a"},
		{ID: "b", ParentID: ptr("gone")},
	}

	nodes := Build(comments)
	require.Len(t, nodes, 1)
	assert.Empty(t, nodes[0].Replies)
}

func TestBuildPreservesInputOrder(t *testing.T) {
	// The builder never re-sorts; callers control order by pre-sorting.
	comments := []models.Comment{
		{ID: "late", CreatedAt: time.Unix(300, 0)},
		{ID: "early", CreatedAt: time.Unix(100, 0)},
		{ID: "mid", CreatedAt: time.Unix(200, 0)},
	}

	nodes := Build(comments)
	require.Len(t, nodes, 3)
	assert.Equal(t, "late", nodes[0].ID)
	assert.Equal(t, "early", nodes[1].ID)
	assert.Equal(t, "mid", nodes[2].ID)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	comments := []models.Comment{
		{ID: "a"},
		{ID: "b", ParentID: ptr("a")},
	}
	snapshot := make([]models.Comment, len(comments))
	copy(snapshot, comments)

	Build(comments)
	assert.Equal(t, snapshot, comments)
}

func TestBuildIsDeterministic(t *testing.T) {
	comments := []models.Comment{
		{ID: "a"},
		{ID: "b", ParentID: ptr("a")},
		{ID: "c"},
	}

	first := Build(comments)
	second := Build(comments)
	assert.Equal(t, first, second)
}

func TestBuildEmptyInput(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([]models.Comment{}))
}
