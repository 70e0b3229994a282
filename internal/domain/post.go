package domain

import "strings"

// Author is the summary of a user embedded in an assembled post.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Post is the assembled view of a post: the row merged with its author
// summary and tag list. The author foreign key is replaced by Author.
type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Active  bool   `json:"active"`
	Author  Author `json:"author"`
	Tags    []Tag  `json:"tags"`
}

// NewPost holds the fields needed to create a post.
type NewPost struct {
	AuthorID int64    `json:"-"`
	Title    string   `json:"title" validate:"required,max=255"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags" validate:"dive,max=255"`
}

// Validate checks the post fields. Tag names are normalized later by the
// tag repository, so they are not checked here.
func (p NewPost) Validate() error {
	if p.AuthorID <= 0 {
		return NewValidationError("author_id", "must be positive", ErrInvalidID)
	}
	if strings.TrimSpace(p.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyContent)
	}
	if strings.TrimSpace(p.Content) == "" {
		return NewValidationError("content", "cannot be empty", ErrEmptyContent)
	}
	return nil
}

// PostUpdate is a partial update of a post.
//
// Tags distinguishes "absent" (nil) from "present" (non-nil, possibly empty).
// When present it is the complete new tag set for the post.
type PostUpdate struct {
	Title   *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content *string   `json:"content,omitempty" validate:"omitempty,min=1"`
	Active  *bool     `json:"active,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// HasColumns reports whether any post column is set.
func (u PostUpdate) HasColumns() bool {
	return u.Title != nil || u.Content != nil || u.Active != nil
}

// ReplacesTags reports whether the update carries a tag set.
func (u PostUpdate) ReplacesTags() bool {
	return u.Tags != nil
}
