package model

import "time"

// User is the persisted account record behind an Identity.
type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"password_hash" validate:"required"`
	FirstName    string    `json:"first_name,omitempty" bson:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName     string    `json:"last_name,omitempty" bson:"last_name,omitempty" validate:"omitempty,max=100"`
	Roles        []string  `json:"roles" bson:"roles" validate:"required,min=1,dive,oneof=USER ADMIN"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

func (u *User) Identity() Identity {
	return Identity{
		OwnerID: u.ID,
		Email:   u.Email,
		Roles:   u.Roles,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}
