package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Feedback status lifecycle. Transitions are deliberately unconstrained:
// any privileged actor may set any status at any time.
const (
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under_review"
	StatusPlanned     = "planned"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
	StatusRejected    = "rejected"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

const (
	VoteUpvote   = "upvote"
	VoteDownvote = "downvote" // modeled but not exposed on any route
)

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusPlanned,
		StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// StringList is stored as a JSON array in a text column. Order is preserved
// for display; it carries no semantic weight.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported source type for StringList")
}

// Board is a named collection of feedback items.
type Board struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedbackItem is a user-submitted suggestion, bug or request tracked
// through a status lifecycle.
type FeedbackItem struct {
	ID          string `gorm:"primarykey;size:36" json:"id"`
	BoardID     string `gorm:"not null;index;size:36" json:"boardId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Status      string `gorm:"not null;default:submitted;index" json:"status"`
	Priority    string `gorm:"not null;default:medium" json:"priority"`
	Category    string `gorm:"index" json:"category"`
	VotesCount  int    `gorm:"not null;default:0" json:"votesCount"`
	// CommentsCount is a cached counter, not derived from the comment table
	// on read. It can drift after partial failures.
	CommentsCount int        `gorm:"not null;default:0" json:"commentsCount"`
	Tags          StringList `gorm:"type:text" json:"tags"`
	Rating        *float64   `json:"rating,omitempty"`
	Hidden        bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Comment belongs to one feedback item. ParentID is nil for a top-level
// comment and points at another comment's ID for a reply.
type Comment struct {
	ID         string    `gorm:"primarykey;size:36" json:"id"`
	FeedbackID string    `gorm:"not null;index;size:36" json:"feedbackId"`
	AuthorID   string    `gorm:"not null;size:36" json:"authorId"`
	Content    string    `gorm:"not null" json:"content"`
	ParentID   *string   `gorm:"index;size:36" json:"parentId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Vote records at most one vote per user per feedback item; the unique
// index is what rejects duplicates, not application code.
type Vote struct {
	ID         string    `gorm:"primarykey;size:36" json:"id"`
	FeedbackID string    `gorm:"not null;uniqueIndex:idx_feedback_user;size:36" json:"feedbackId"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_feedback_user;size:36" json:"userId"`
	VoteType   string    `gorm:"not null;default:upvote" json:"voteType"`
	CreatedAt  time.Time `json:"createdAt"`
}
