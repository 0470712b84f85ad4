package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Post represents one entry on the board
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	OwnerID    string    `json:"owner_id"`
	OwnerEmail string    `json:"owner_email"`
	OwnerName  *string   `json:"owner_name,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// Writer returns the name shown as the author of the post
func (p *Post) Writer() string {
	if p.OwnerName != nil && *p.OwnerName != "" {
		return *p.OwnerName
	}
	return p.OwnerEmail
}

// PostSummary is a post as shown in a board listing
type PostSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Writer    string    `json:"writer"`
	CreatedOn time.Time `json:"created_on"`
}

// PostDetail is a post as shown on its own page
type PostDetail struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Writer      string    `json:"writer"`
	WriterEmail string    `json:"writer_email"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// ToSummary converts a Post to its listing representation
func (p Post) ToSummary() PostSummary {
	return PostSummary{
		ID:        p.ID,
		Title:     p.Title,
		Writer:    p.Writer(),
		CreatedOn: p.CreatedOn,
	}
}

// ToDetail converts a Post to its detail representation
func (p *Post) ToDetail() *PostDetail {
	return &PostDetail{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Writer:      p.Writer(),
		WriterEmail: p.OwnerEmail,
		CreatedOn:   p.CreatedOn,
		UpdatedOn:   p.UpdatedOn,
	}
}

// Constraints
const (
	MaxPostTitleLength   = 100
	MaxPostContentLength = 5000
)

// AddPostRequest represents a request to create a post
type AddPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate checks the create request
func (r *AddPostRequest) Validate() []FieldError {
	var errs []FieldError
	errs = append(errs, validateTitle(r.Title)...)
	errs = append(errs, validateContent(r.Content)...)
	return errs
}

// ToPost builds a new post owned by user
func (r *AddPostRequest) ToPost(owner *User) *Post {
	return &Post{
		Title:      strings.TrimSpace(r.Title),
		Content:    r.Content,
		OwnerID:    owner.ID,
		OwnerEmail: owner.Email,
		OwnerName:  owner.Username,
	}
}

// ModifyPostRequest represents a request to update a post.
// Nil fields are left unchanged.
type ModifyPostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Validate checks the update request
func (r *ModifyPostRequest) Validate() []FieldError {
	if r.Title == nil && r.Content == nil {
		return []FieldError{{Field: "body", Message: "title or content is required"}}
	}
	var errs []FieldError
	if r.Title != nil {
		errs = append(errs, validateTitle(*r.Title)...)
	}
	if r.Content != nil {
		errs = append(errs, validateContent(*r.Content)...)
	}
	return errs
}

// ToUpdate converts the request into a store update
func (r *ModifyPostRequest) ToUpdate() PostUpdate {
	upd := PostUpdate{Content: r.Content}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		upd.Title = &title
	}
	return upd
}

// PostUpdate lists the fields an update writes. Nil means keep.
type PostUpdate struct {
	Title   *string
	Content *string
}

// Apply writes the update onto p
func (u PostUpdate) Apply(p *Post) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
}

func validateTitle(title string) []FieldError {
	title = strings.TrimSpace(title)
	if title == "" {
		return []FieldError{{Field: "title", Message: "title is required"}}
	}
	if utf8.RuneCountInString(title) > MaxPostTitleLength {
		return []FieldError{{Field: "title", Message: "title must be at most 100 characters"}}
	}
	return nil
}

func validateContent(content string) []FieldError {
	if strings.TrimSpace(content) == "" {
		return []FieldError{{Field: "content", Message: "content is required"}}
	}
	if utf8.RuneCountInString(content) > MaxPostContentLength {
		return []FieldError{{Field: "content", Message: "content must be at most 5000 characters"}}
	}
	return nil
}
