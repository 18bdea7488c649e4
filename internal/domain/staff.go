package domain

import "time"

// StaffProfile extends an Account for as long as its role is above customer.
// It is created on promotion off customer and removed on demotion back.
type StaffProfile struct {
	ID          string
	AccountID   string
	Department  string
	Position    string
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
