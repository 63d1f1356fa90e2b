package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Priority indicates how important a piece of content is to its owner.
// It is carried for the dashboard and due-list ordering; it does not
// influence scheduling math.
type Priority string

// Possible priority values
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Content-specific validation errors
var (
	// ErrContentIDEmpty is returned when a content ID is empty or nil.
	ErrContentIDEmpty = errors.New("content ID cannot be empty")

	// ErrContentUserIDEmpty is returned when a content's user ID is empty or nil.
	ErrContentUserIDEmpty = errors.New("content user ID cannot be empty")

	// ErrContentTitleEmpty is returned when a content's title is empty.
	ErrContentTitleEmpty = errors.New("content title cannot be empty")

	// ErrContentBodyEmpty is returned when a content's body is empty.
	ErrContentBodyEmpty = errors.New("content body cannot be empty")
)

// Content represents a piece of learning material owned by a user.
// Scheduling reacts to its existence, not its edits: the review engine
// never reads Title or Body after the schedule has been created.
type Content struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  *string   `json:"category,omitempty"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewContent creates a new Content with the given owner, title, body,
// optional category and priority. An empty priority defaults to medium.
// Returns an error if validation fails.
func NewContent(userID uuid.UUID, title, body string, category *string, priority Priority) (*Content, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	content := &Content{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Category:  category,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := content.Validate(); err != nil {
		return nil, err
	}

	return content, nil
}

// Validate checks if the Content has valid data.
// Returns an error if any field fails validation.
func (c *Content) Validate() error {
	if c.ID == uuid.Nil {
		return ErrContentIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrContentUserIDEmpty
	}

	if c.Title == "" {
		return ErrContentTitleEmpty
	}

	if c.Body == "" {
		return ErrContentBodyEmpty
	}

	if !c.Priority.IsValid() {
		return ErrInvalidPriority
	}

	return nil
}

// IsValid reports whether the priority is one of low, medium, high.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
