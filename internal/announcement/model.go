package announcement

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date form used for announcement windows.
// Lexicographic comparison of this form is equivalent to chronological order.
const DateLayout = "2006-01-02"

var (
	ErrNotFound             = errors.New("announcement not found")
	ErrInvalidID            = errors.New("invalid announcement ID")
	ErrInvalidDateFormat    = errors.New("invalid date format")
	ErrStartAfterExpiration = errors.New("start date must be before expiration date")
	ErrMessageLength        = errors.New("message must be between 1 and 500 characters")
	ErrUnauthorized         = errors.New("unauthorized")
)

// Announcement is a time-bounded message shown to users while the current
// date falls inside its window.
type Announcement struct {
	ID             string // UUID, assigned by storage
	Message        string
	StartDate      *string // ISO YYYY-MM-DD; nil means active immediately
	ExpirationDate string  // ISO YYYY-MM-DD
	CreatedBy      string
	CreatedAt      time.Time
}
