// Package domain contains core business entities and rules.
package domain

import "slices"

// Post is a post published by a user of the upstream service.
// This is a domain entity - it has no knowledge of external systems.
type Post struct {
	// ID is the upstream-assigned identifier.
	ID int

	// UserID identifies the author.
	UserID int

	// Title is the post headline.
	Title string

	// Body is the post text.
	Body string

	// comments is only reachable through Comments and SetComments so that
	// no caller can share the backing array with the post.
	comments []Comment
}

// Comments returns a copy of the embedded comments.
// Returns nil if comments were never attached.
func (p *Post) Comments() []Comment {
	return slices.Clone(p.comments)
}

// SetComments stores a copy of comments on the post.
// Passing nil detaches any previously attached comments.
func (p *Post) SetComments(comments []Comment) {
	p.comments = slices.Clone(comments)
}

// HasComments reports whether comments were attached, even an empty list.
func (p *Post) HasComments() bool {
	return p.comments != nil
}

// Comment is a comment left on a post.
type Comment struct {
	ID     int
	PostID int
	Name   string
	Email  string
	Body   string
}
