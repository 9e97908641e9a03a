package domain

import "time"

// Notification is a message delivered to a staff member.
type Notification struct {
	ID        string
	StaffID   string
	Title     string
	Message   string
	Data      map[string]any
	ReadAt    *time.Time
	CreatedAt time.Time
}
