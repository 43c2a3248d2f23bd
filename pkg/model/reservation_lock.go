package model

import "time"

// ReservationLock is an advisory lock keyed by court and slot start time.
// Inserting it guards the overlap-check-then-save window against a second
// request racing for the same slot.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
