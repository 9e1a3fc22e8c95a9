// Package models defines data structures shared by the loader, the
// enrichment loop, and the writer.
package models

// InputRecord is one row of the input spreadsheet.
type InputRecord struct {
	URL     string  `json:"url"`
	Traffic float64 `json:"traffic"`
}

// Post holds the submission metadata fetched from Reddit.
type Post struct {
	Locked      bool `json:"locked"`
	Archived    bool `json:"archived"`
	NumComments int  `json:"num_comments"`
}

// Terminal states serialized in place of a numeric comment count.
const (
	StateLocked   = "locked"
	StateArchived = "archived"
)

// CommentCount is either a numeric count or one of the terminal
// markers for submissions whose count is not retrievable.
type CommentCount struct {
	Count    int
	Locked   bool
	Archived bool
}

// CommentCountFromPost maps submission metadata to a CommentCount.
// Locked takes precedence over archived, matching the lookup order.
func CommentCountFromPost(post Post) CommentCount {
	switch {
	case post.Locked:
		return CommentCount{Locked: true}
	case post.Archived:
		return CommentCount{Archived: true}
	default:
		return CommentCount{Count: post.NumComments}
	}
}

// CellValue returns the value written to the output spreadsheet: the
// string "locked" or "archived" for terminal states, otherwise the
// numeric count.
func (c CommentCount) CellValue() any {
	switch {
	case c.Locked:
		return StateLocked
	case c.Archived:
		return StateArchived
	default:
		return c.Count
	}
}

// OutputRecord is an InputRecord joined with its lookup outcome.
type OutputRecord struct {
	URL          string       `json:"url"`
	Traffic      float64      `json:"traffic"`
	CommentCount CommentCount `json:"comment_count"`
}
