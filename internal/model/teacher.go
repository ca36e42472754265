package model

import "time"

// Teacher is a directory entry for a teacher visible in the console. Only the
// directory lives in our database; all schedule data stays in the booking
// backend.
type Teacher struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
