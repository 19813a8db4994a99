// Package model defines domain entities for the application.
package model

import "time"

// User represents a member of the user directory.
// ID and CreatedAt are assigned by the database and never change;
// the service exposes no update or delete operations.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}
