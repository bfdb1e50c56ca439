package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pulseboard/pulseboard/internal/models"
)

// GormClient implements Client on a GORM connection. It plays the role of
// the hosted backend: persistence, duplicate-vote rejection via the unique
// index, soft deletes via the hidden flag.
type GormClient struct {
	db *gorm.DB
}

func NewGormClient(db *gorm.DB) *GormClient {
	return &GormClient{db: db}
}

// Migrate creates or updates the schema for every model the client owns.
func (g *GormClient) Migrate() error {
	return g.db.AutoMigrate(
		&models.Board{},
		&models.FeedbackItem{},
		&models.Comment{},
		&models.Vote{},
	)
}

func (g *GormClient) FetchBoards(ctx context.Context) ([]models.Board, error) {
	var boards []models.Board
	if err := g.db.WithContext(ctx).Order("created_at asc").Find(&boards).Error; err != nil {
		return nil, storageErr("fetch boards", err)
	}
	return boards, nil
}

func (g *GormClient) CreateBoard(ctx context.Context, name, slug string) (models.Board, error) {
	if strings.TrimSpace(name) == "" {
		return models.Board{}, fmt.Errorf("%w: board name is required", ErrValidation)
	}
	if strings.TrimSpace(slug) == "" {
		return models.Board{}, fmt.Errorf("%w: board slug is required", ErrValidation)
	}
	board := models.Board{ID: uuid.NewString(), Name: name, Slug: slug}
	if err := g.db.WithContext(ctx).Create(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Board{}, fmt.Errorf("%w: slug %q already taken", ErrDuplicate, slug)
		}
		return models.Board{}, storageErr("create board", err)
	}
	return board, nil
}

func (g *GormClient) FetchFeedback(ctx context.Context, boardID string) ([]models.FeedbackItem, error) {
	var items []models.FeedbackItem
	err := g.db.WithContext(ctx).
		Where("board_id = ? AND hidden = ?", boardID, false).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, storageErr("fetch feedback", err)
	}
	return items, nil
}

func (g *GormClient) CreateFeedback(ctx context.Context, boardID string, in CreateFeedbackInput) (models.FeedbackItem, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.FeedbackItem{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return models.FeedbackItem{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}

	var board models.Board
	if err := g.db.WithContext(ctx).First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FeedbackItem{}, fmt.Errorf("%w: board %s", ErrNotFound, boardID)
		}
		return models.FeedbackItem{}, storageErr("check board", err)
	}

	item := models.FeedbackItem{
		ID:          uuid.NewString(),
		BoardID:     boardID,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusSubmitted,
		Priority:    priority,
		Category:    in.Category,
		Tags:        models.StringList(in.Tags),
	}
	if err := g.db.WithContext(ctx).Create(&item).Error; err != nil {
		return models.FeedbackItem{}, storageErr("create feedback", err)
	}
	return item, nil
}

func (g *GormClient) RemoveFeedback(ctx context.Context, feedbackID string) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.FeedbackItem
		if err := tx.First(&item, "id = ?", feedbackID).Error; err != nil {
			return err
		}
		return tx.Model(&item).Update("hidden", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: feedback %s", ErrNotFound, feedbackID)
		}
		return storageErr("remove feedback", err)
	}
	return nil
}

func (g *GormClient) FetchComments(ctx context.Context, feedbackID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := g.db.WithContext(ctx).
		Where("feedback_id = ?", feedbackID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, storageErr("fetch comments", err)
	}
	return comments, nil
}

func (g *GormClient) CreateComment(ctx context.Context, feedbackID, authorID, content string, parentID *string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	comment := models.Comment{
		ID:         uuid.NewString(),
		FeedbackID: feedbackID,
		AuthorID:   authorID,
		Content:    content,
		ParentID:   parentID,
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.FeedbackItem
		if err := tx.First(&item, "id = ? AND hidden = ?", feedbackID, false).Error; err != nil {
			return err
		}
		if parentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, "id = ? AND feedback_id = ?", *parentID, feedbackID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: parent comment %s", ErrNotFound, *parentID)
				}
				return err
			}
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Comment{}, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, fmt.Errorf("%w: feedback %s", ErrNotFound, feedbackID)
		}
		return models.Comment{}, storageErr("create comment", err)
	}

	// Cached counter, bumped best-effort outside the transaction. A failure
	// here leaves the counter behind the true count; accepted drift.
	err = g.db.WithContext(ctx).Model(&models.FeedbackItem{}).
		Where("id = ?", feedbackID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	if err != nil {
		log.WithError(err).WithField("feedback_id", feedbackID).
			Warn("comment counter increment failed; counter will drift")
	}

	return comment, nil
}

func (g *GormClient) Vote(ctx context.Context, feedbackID, userID, voteType string) error {
	if voteType != models.VoteUpvote && voteType != models.VoteDownvote {
		return fmt.Errorf("%w: unknown vote type %q", ErrValidation, voteType)
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.FeedbackItem
		if err := tx.First(&item, "id = ? AND hidden = ?", feedbackID, false).Error; err != nil {
			return err
		}
		vote := models.Vote{
			ID:         uuid.NewString(),
			FeedbackID: feedbackID,
			UserID:     userID,
			VoteType:   voteType,
		}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		delta := 1
		if voteType == models.VoteDownvote {
			delta = -1
		}
		next := item.VotesCount + delta
		if next < 0 {
			next = 0
		}
		return tx.Model(&item).UpdateColumn("votes_count", next).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("%w: feedback %s", ErrNotFound, feedbackID)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return fmt.Errorf("%w: user %s already voted on %s", ErrDuplicate, userID, feedbackID)
		default:
			return storageErr("record vote", err)
		}
	}
	return nil
}

func (g *GormClient) UpdateStatus(ctx context.Context, feedbackID, newStatus string) (models.FeedbackItem, error) {
	if !models.ValidStatus(newStatus) {
		return models.FeedbackItem{}, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	var item models.FeedbackItem
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ? AND hidden = ?", feedbackID, false).Error; err != nil {
			return err
		}
		// Any status is settable from any status; no transition graph.
		if err := tx.Model(&item).Update("status", newStatus).Error; err != nil {
			return err
		}
		item.Status = newStatus
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FeedbackItem{}, fmt.Errorf("%w: feedback %s", ErrNotFound, feedbackID)
		}
		return models.FeedbackItem{}, storageErr("update status", err)
	}
	return item, nil
}

// storageErr logs the underlying failure and surfaces it as the retryable
// network kind; callers only see the taxonomy, never driver details.
func storageErr(op string, err error) error {
	log.WithError(err).WithField("op", op).Error("storage operation failed")
	return fmt.Errorf("%w: %s", ErrNetwork, op)
}
