// Package backend defines the data-access contracts the feedback engine
// consumes, plus the GORM-backed implementation of them. The engine itself
// is agnostic to what sits behind the Client interface.
package backend

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/models"
)

// CreateFeedbackInput carries the user-supplied fields for a new feedback
// item. Everything except Title is optional.
type CreateFeedbackInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Tags        []string
}

// Client is the contract to the hosted backend. Implementations own
// persistence and duplicate-vote rejection; callers own optimistic state
// and compensation.
type Client interface {
	FetchBoards(ctx context.Context) ([]models.Board, error)
	CreateBoard(ctx context.Context, name, slug string) (models.Board, error)

	// FetchFeedback returns all visible items for a board. Ordering is
	// backend-determined and treated as relevance order downstream.
	FetchFeedback(ctx context.Context, boardID string) ([]models.FeedbackItem, error)
	CreateFeedback(ctx context.Context, boardID string, in CreateFeedbackInput) (models.FeedbackItem, error)
	RemoveFeedback(ctx context.Context, feedbackID string) error

	// FetchComments returns the full flat comment list for one item. No
	// ordering is guaranteed; callers sort before building the thread.
	FetchComments(ctx context.Context, feedbackID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, feedbackID, authorID, content string, parentID *string) (models.Comment, error)

	Vote(ctx context.Context, feedbackID, userID, voteType string) error
	UpdateStatus(ctx context.Context, feedbackID, newStatus string) (models.FeedbackItem, error)
}
