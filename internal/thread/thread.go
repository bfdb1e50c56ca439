// Package thread reconstructs a flat comment list into the two-level
// display structure used by the feedback detail view.
package thread

import (
	"github.com/pulseboard/pulseboard/internal/models"
)

// Node is one top-level comment with its direct replies attached.
type Node struct {
	models.Comment
	Replies []models.Comment `json:"replies"`
}

// Build partitions comments into top-level nodes and direct replies.
//
// The display model supports exactly one level of nesting: a reply whose
// parent is itself a reply has no slot in the structure and is dropped.
// That loss is a known constraint of the two-level model, not a bug to fix
// with deeper nesting.
//
// Build never mutates its input and never re-sorts: callers pre-sort by
// createdAt in their preferred direction, and both top-level nodes and
// replies come out in input order.
func Build(comments []models.Comment) []Node {
	topLevel := make([]models.Comment, 0, len(comments))
	byParent := make(map[string][]models.Comment)

	for _, c := range comments {
		if c.ParentID == nil {
			topLevel = append(topLevel, c)
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}

	nodes := make([]Node, 0, len(topLevel))
	for _, c := range topLevel {
		replies := byParent[c.ID]
		if replies == nil {
			replies = []models.Comment{}
		}
		nodes = append(nodes, Node{Comment: c, Replies: replies})
	}
	return nodes
}
