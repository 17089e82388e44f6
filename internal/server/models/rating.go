package models

import "time"

// Rating is a row of the ratings table.
type Rating struct {
	ID            string
	SwapRequestID string
	RaterID       string
	RatedUserID   string
	Value         int
	Comment       string
	CreatedAt     time.Time
}

// RatingSummary is the aggregate stored back on the rated user.
type RatingSummary struct {
	Average float64
	Count   int
}
