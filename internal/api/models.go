package api

import (
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
)

// Common request/response structures

// CreateContentRequest defines the payload for the content creation endpoint.
type CreateContentRequest struct {
	Title    string  `json:"title"    validate:"required,max=500"`
	Body     string  `json:"body"     validate:"required"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Priority string  `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// CompleteReviewRequest defines the payload for the review completion
// endpoint.
type CompleteReviewRequest struct {
	Outcome          string `json:"outcome" validate:"required,oneof=remembered partial forgot"`
	TimeSpentSeconds *int   `json:"time_spent_seconds,omitempty" validate:"omitempty,gte=0"`
}

// ContentResponse represents the response data for a content item.
type ContentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  *string   `json:"category,omitempty"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleResponse represents the response data for a review schedule.
type ScheduleResponse struct {
	UserID                 string     `json:"user_id"`
	ContentID              string     `json:"content_id"`
	LadderIndex            int        `json:"ladder_index"`
	NextReviewDate         string     `json:"next_review_date"` // YYYY-MM-DD, owner-local
	IsActive               bool       `json:"is_active"`
	InitialReviewCompleted bool       `json:"initial_review_completed"`
	LastReviewedAt         *time.Time `json:"last_reviewed_at,omitempty"`
}

// CreateContentResponse pairs the created content with its initial schedule.
type CreateContentResponse struct {
	Content  ContentResponse  `json:"content"`
	Schedule ScheduleResponse `json:"schedule"`
}

// ContentListResponse is a page of the caller's content items.
type ContentListResponse struct {
	Items []ContentResponse `json:"items"`
	Count int               `json:"count"`
}

// DueItemResponse is one entry of the due-today queue.
type DueItemResponse struct {
	Content  ContentResponse  `json:"content"`
	Schedule ScheduleResponse `json:"schedule"`
}

// DueListResponse is the due-today queue.
type DueListResponse struct {
	Items []DueItemResponse `json:"items"`
	Count int               `json:"count"`
}

func contentToResponse(content *domain.Content) ContentResponse {
	return ContentResponse{
		ID:        content.ID.String(),
		UserID:    content.UserID.String(),
		Title:     content.Title,
		Body:      content.Body,
		Category:  content.Category,
		Priority:  string(content.Priority),
		CreatedAt: content.CreatedAt,
		UpdatedAt: content.UpdatedAt,
	}
}

func scheduleToResponse(schedule *domain.ReviewSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		UserID:                 schedule.UserID.String(),
		ContentID:              schedule.ContentID.String(),
		LadderIndex:            schedule.LadderIndex,
		NextReviewDate:         schedule.NextReviewDate.Format("2006-01-02"),
		IsActive:               schedule.IsActive,
		InitialReviewCompleted: schedule.InitialReviewCompleted,
	}
	if !schedule.LastReviewedAt.IsZero() {
		lastReviewed := schedule.LastReviewedAt
		resp.LastReviewedAt = &lastReviewed
	}
	return resp
}
