package http

import (
	"time"

	"github.com/classpage/announcements-backend/internal/announcement"
)

type Response struct {
	ID             string    `json:"id"`
	Message        string    `json:"message"`
	StartDate      *string   `json:"start_date"`
	ExpirationDate string    `json:"expiration_date"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResponse(a *announcement.Announcement) Response {
	return Response{
		ID:             a.ID,
		Message:        a.Message,
		StartDate:      a.StartDate,
		ExpirationDate: a.ExpirationDate,
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
	}
}

type CreateBody struct {
	Message        string  `json:"message" binding:"required"`
	StartDate      *string `json:"start_date"`
	ExpirationDate string  `json:"expiration_date" binding:"required"`
	CreatedBy      string  `json:"created_by" binding:"required"`
}

// UpdateBody is a partial update. Pointers distinguish "field not sent" from
// "field sent empty".
type UpdateBody struct {
	Message        *string `json:"message"`
	StartDate      *string `json:"start_date"`
	ExpirationDate *string `json:"expiration_date"`
}

// DeleteResponse confirms a removal.
type DeleteResponse struct {
	Message string `json:"message"`
}
