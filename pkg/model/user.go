package model

// User is the renting party. The phone number is the procedural identity
// key: the reservation workflow creates at most one active user per phone
// number, and never merges full names afterwards.
type User struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FullName    string `json:"full_name" bson:"full_name" validate:"required,min=2,max=100"`
	PhoneNumber string `json:"phone_number" bson:"phone_number" validate:"required,phone"`
	Deleted     bool   `json:"deleted" bson:"deleted"`
}

func (u *User) GetID() string   { return u.ID }
func (u *User) SetID(id string) { u.ID = id }
