package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseboard/pulseboard/internal/models"
)

// The validation pre-checks must fire before any storage work; a client
// with no connection at all proves they do.

func TestCreateFeedbackEmptyTitleFailsBeforeStorage(t *testing.T) {
	g := NewGormClient(nil)

	_, err := g.CreateFeedback(context.Background(), "board-1", CreateFeedbackInput{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateFeedbackUnknownPriorityFailsBeforeStorage(t *testing.T) {
	g := NewGormClient(nil)

	_, err := g.CreateFeedback(context.Background(), "board-1", CreateFeedbackInput{
		Title:    "ok",
		Priority: "urgent",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateCommentEmptyContentFailsBeforeStorage(t *testing.T) {
	g := NewGormClient(nil)

	_, err := g.CreateComment(context.Background(), "f-1", "u-1", "", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVoteUnknownTypeFailsBeforeStorage(t *testing.T) {
	g := NewGormClient(nil)

	err := g.Vote(context.Background(), "f-1", "u-1", "sideways")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusUnknownValueFailsBeforeStorage(t *testing.T) {
	g := NewGormClient(nil)

	_, err := g.UpdateStatus(context.Background(), "f-1", "archived")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBoardBlankFieldsFailBeforeStorage(t *testing.T) {
	g := NewGormClient(nil)

	_, err := g.CreateBoard(context.Background(), "", "slug")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = g.CreateBoard(context.Background(), "Name", " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStatusEnumCoverage(t *testing.T) {
	for _, s := range []string{
		models.StatusSubmitted, models.StatusUnderReview, models.StatusPlanned,
		models.StatusInProgress, models.StatusCompleted, models.StatusRejected,
	} {
		assert.True(t, models.ValidStatus(s), s)
	}
	assert.False(t, models.ValidStatus("archived"))
}
