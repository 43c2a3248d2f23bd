package model

import (
	"time"
)

// Reservation occupies the half-open interval [StartTime, EndTime) on its
// court. Two non-deleted reservations for the same court must never overlap;
// touching endpoints do not count as an overlap.
type Reservation struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CourtID     string    `json:"court_id" bson:"court_id" validate:"required,mongodb"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number" validate:"required,phone"`
	FullName    string    `json:"full_name" bson:"full_name" validate:"required,min=2,max=100"`
	StartTime   time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	FourPlayers bool      `json:"four_players" bson:"four_players"`
	Deleted     bool      `json:"deleted" bson:"deleted"`
}

func (r *Reservation) GetID() string   { return r.ID }
func (r *Reservation) SetID(id string) { r.ID = id }

// Minutes is the whole-minute duration of the reservation, the unit the
// pricing engine bills in.
func (r *Reservation) Minutes() int64 {
	return int64(r.EndTime.Sub(r.StartTime) / time.Minute)
}
