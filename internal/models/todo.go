package models

import "time"

// Todo is a single owned list entry. Ownership is fixed at creation and
// never transferred; CreatedAt is set once and immutable.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}
