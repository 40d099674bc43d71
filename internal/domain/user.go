package domain

import "time"

// User owns accounts and, transitively, every transaction referencing them.
type User struct {
	ID             int64
	Email          string
	Name           string
	HashedPassword string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
