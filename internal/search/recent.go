// Package search keeps per-user recent search terms behind a small injected
// persistence capability, so callers never reach into ambient global state
// and tests can swap in the in-memory implementation.
package search

import (
	"context"
	"strings"
)

// MaxRecent caps the list per user; older terms fall off the end.
const MaxRecent = 10

// Recents stores a most-recent-first, deduplicated list of search terms per
// user. Add with an already-recorded term moves it to the front.
type Recents interface {
	Get(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, term string) error
	Clear(ctx context.Context, userID string) error
}

// push applies the shared list discipline: trim, dedupe, front-insert, cap.
// Blank terms leave the list untouched.
func push(list []string, term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return list
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, term)
	for _, t := range list {
		if strings.EqualFold(t, term) {
			continue
		}
		out = append(out, t)
	}
	if len(out) > MaxRecent {
		out = out[:MaxRecent]
	}
	return out
}
