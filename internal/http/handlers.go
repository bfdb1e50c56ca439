package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/pulseboard/pulseboard/internal/backend"
	"github.com/pulseboard/pulseboard/internal/models"
	"github.com/pulseboard/pulseboard/internal/search"
	"github.com/pulseboard/pulseboard/internal/store"
	"github.com/pulseboard/pulseboard/internal/thread"
	"github.com/pulseboard/pulseboard/internal/view"
	"github.com/pulseboard/pulseboard/internal/ws"
)

// --- Structs for request binding ---

type CreateBoardInput struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Slug string `json:"slug" binding:"required,min=1,max=60"`
}

type CreateFeedbackInput struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	Category    string   `json:"category" binding:"max=60"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Tags        []string `json:"tags" binding:"max=20"`
}

type CreateCommentInput struct {
	Content  string  `json:"content" binding:"required,min=1,max=5000"`
	ParentID *string `json:"parentId"`
}

type VoteInput struct {
	VoteType string `json:"voteType" binding:"omitempty,oneof=upvote downvote"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// WsMessage is the JSON envelope pushed to websocket subscribers.
type WsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// --- Handlers ---

// Env bundles the handler dependencies: the backend client, the per-board
// feedback stores, the recent-search capability and the broadcast hub.
type Env struct {
	Backend backend.Client
	Recents search.Recents
	Hub     *ws.Hub

	mu     sync.RWMutex
	stores map[string]*store.FeedbackStore
}

func NewEnv(client backend.Client, recents search.Recents, hub *ws.Hub) *Env {
	return &Env{
		Backend: client,
		Recents: recents,
		Hub:     hub,
		stores:  make(map[string]*store.FeedbackStore),
	}
}

// storeFor returns the feedback store owning the given board's context,
// creating it on first use.
func (e *Env) storeFor(boardID string) *store.FeedbackStore {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.stores[boardID]
	if !ok {
		s = store.New()
		e.stores[boardID] = s
	}
	return s
}

// findStore locates the store holding a feedback id. Boards are few; a
// linear scan is fine.
func (e *Env) findStore(feedbackID string) (*store.FeedbackStore, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, s := range e.stores {
		if _, ok := s.Get(feedbackID); ok {
			return s, true
		}
	}
	return nil, false
}

func (e *Env) ListBoards(c *gin.Context) {
	boards, err := e.Backend.FetchBoards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (e *Env) CreateBoard(c *gin.Context) {
	var input CreateBoardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	board, err := e.Backend.CreateBoard(c.Request.Context(), input.Name, input.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// ListFeedback refreshes the board's store from the backend, then derives
// the response through the filter/sort pipeline. The store keeps the raw
// list; filtering never touches it.
func (e *Env) ListFeedback(c *gin.Context) {
	boardID := c.Param("id")

	items, err := e.Backend.FetchFeedback(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	s := e.storeFor(boardID)
	s.Load(items)

	params := view.Params{
		SearchText: c.Query("q"),
		Status:     c.Query("status"),
		Category:   c.Query("category"),
		Priority:   c.Query("priority"),
		SortKey:    c.Query("sort"),
	}
	result := view.Apply(s.Items(), params)

	if sess, ok := sessionFrom(c); ok && params.SearchText != "" {
		if err := e.Recents.Add(c.Request.Context(), sess.UserID, params.SearchText); err != nil {
			log.WithError(err).Warn("failed to record recent search")
		}
	}

	c.JSON(http.StatusOK, result)
}

func (e *Env) CreateFeedback(c *gin.Context) {
	boardID := c.Param("id")
	var input CreateFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	item, err := e.Backend.CreateFeedback(c.Request.Context(), boardID, backend.CreateFeedbackInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Tags:        input.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	e.storeFor(boardID).Upsert(item)
	e.broadcastMessage(WsMessage{Type: "new_feedback", Data: item})
	c.JSON(http.StatusCreated, item)
}

// ListComments returns the two-level thread for one feedback item. The
// flat list is sorted by creation time ascending before the tree is built;
// the builder itself never re-sorts.
func (e *Env) ListComments(c *gin.Context) {
	feedbackID := c.Param("id")

	comments, err := e.Backend.FetchComments(c.Request.Context(), feedbackID)
	if err != nil {
		respondError(c, err)
		return
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	c.JSON(http.StatusOK, thread.Build(comments))
}

func (e *Env) CreateComment(c *gin.Context) {
	feedbackID := c.Param("id")
	sess, _ := sessionFrom(c)

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	comment, err := e.Backend.CreateComment(c.Request.Context(), feedbackID, sess.UserID, input.Content, input.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Mirror the cached counter on the held item, when we hold it.
	if s, ok := e.findStore(feedbackID); ok {
		if item, held := s.Get(feedbackID); held {
			item.CommentsCount++
			s.Upsert(item)
		}
	}
	e.broadcastMessage(WsMessage{Type: "new_comment", Data: comment})
	c.JSON(http.StatusCreated, comment)
}

// VoteFeedback applies the vote optimistically, confirms it against the
// backend and compensates when the write is rejected. A vote for an item
// the backend no longer knows also evicts it from the store.
func (e *Env) VoteFeedback(c *gin.Context) {
	feedbackID := c.Param("id")
	sess, _ := sessionFrom(c)

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	voteType := input.VoteType
	if voteType == "" {
		voteType = models.VoteUpvote
	}
	delta := 1
	if voteType == models.VoteDownvote {
		delta = -1
	}

	s, held := e.findStore(feedbackID)
	if !held {
		// The stores may hold a subset of the backend's items; a vote on
		// an unknown one is still a legitimate backend write, there is
		// just nothing to update or roll back locally.
		s = store.New()
	}

	err := s.Optimistic(feedbackID, delta, func() error {
		return e.Backend.Vote(c.Request.Context(), feedbackID, sess.UserID, voteType)
	})
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			s.Remove(feedbackID)
		}
		respondError(c, err)
		return
	}

	item, _ := s.Get(feedbackID)
	payload := gin.H{"id": feedbackID, "votesCount": item.VotesCount}
	e.broadcastMessage(WsMessage{Type: "vote", Data: payload})
	c.JSON(http.StatusOK, payload)
}

func (e *Env) UpdateStatus(c *gin.Context) {
	feedbackID := c.Param("id")

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	item, err := e.Backend.UpdateStatus(c.Request.Context(), feedbackID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	e.storeFor(item.BoardID).Upsert(item)
	e.broadcastMessage(WsMessage{Type: "status_changed", Data: item})
	c.JSON(http.StatusOK, item)
}

func (e *Env) DeleteFeedback(c *gin.Context) {
	feedbackID := c.Param("id")

	if err := e.Backend.RemoveFeedback(c.Request.Context(), feedbackID); err != nil {
		respondError(c, err)
		return
	}
	if s, ok := e.findStore(feedbackID); ok {
		s.Remove(feedbackID)
	}
	e.broadcastMessage(WsMessage{Type: "delete", Data: gin.H{"id": feedbackID}})
	c.JSON(http.StatusOK, gin.H{"message": "Feedback hidden successfully"})
}

func (e *Env) RecentSearches(c *gin.Context) {
	sess, _ := sessionFrom(c)
	list, err := e.Recents.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		log.WithError(err).Error("failed to fetch recent searches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent searches"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (e *Env) ClearRecentSearches(c *gin.Context) {
	sess, _ := sessionFrom(c)
	if err := e.Recents.Clear(c.Request.Context(), sess.UserID); err != nil {
		log.WithError(err).Error("failed to clear recent searches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear recent searches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recent searches cleared"})
}

// broadcastMessage marshals the envelope and pushes it to the hub.
func (e *Env) broadcastMessage(msg WsMessage) {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("failed to marshal ws message")
		return
	}
	e.Hub.Broadcast <- jsonMsg
}

// respondError maps the backend error taxonomy onto HTTP statuses. Every
// handler recovers here; nothing propagates past the action boundary.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, backend.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, backend.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role for this action"})
	case errors.Is(err, backend.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, backend.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Already recorded"})
	case errors.Is(err, backend.ErrNetwork):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Temporary failure, please retry"})
	default:
		log.WithError(err).Error("unhandled error in handler")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
