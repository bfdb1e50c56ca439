// Package store holds the in-memory feedback list for one board context and
// applies local mutations optimistically while network writes are in flight.
package store

import (
	"sync"

	"github.com/pulseboard/pulseboard/internal/models"
)

// FeedbackStore owns the authoritative in-memory list of feedback items.
// Every operation is total: a missing id is "nothing to do", never an error,
// because the held list may legitimately be a filtered or paged subset of
// the backend's full set.
type FeedbackStore struct {
	mu    sync.RWMutex
	items []models.FeedbackItem
}

func New() *FeedbackStore {
	return &FeedbackStore{}
}

// Load replaces the held list wholesale. Used after an initial fetch or an
// explicit refresh; the new list is the source of truth until the next Load.
func (s *FeedbackStore) Load(items []models.FeedbackItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]models.FeedbackItem, len(items))
	copy(s.items, items)
}

// Items returns a snapshot copy of the held list in its current order.
func (s *FeedbackStore) Items() []models.FeedbackItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FeedbackItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given id, if held.
func (s *FeedbackStore) Get(feedbackID string) (models.FeedbackItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ID == feedbackID {
			return s.items[i], true
		}
	}
	return models.FeedbackItem{}, false
}

// ApplyVote adds delta to the matching item's vote count, clamped so the
// result never goes below zero. Synchronous and immediately visible; it does
// not wait for network confirmation. No-op when the id is not held.
func (s *FeedbackStore) ApplyVote(feedbackID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != feedbackID {
			continue
		}
		next := s.items[i].VotesCount + delta
		if next < 0 {
			next = 0
		}
		s.items[i].VotesCount = next
		return
	}
}

// Upsert inserts a new item or replaces an existing one matched by id.
func (s *FeedbackStore) Upsert(item models.FeedbackItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			return
		}
	}
	s.items = append(s.items, item)
}

// Remove drops the item with the given id. No-op when not held.
func (s *FeedbackStore) Remove(feedbackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == feedbackID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Len reports how many items are held.
func (s *FeedbackStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
