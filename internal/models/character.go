package models

import (
	"time"

	"github.com/google/uuid"
)

// Character is a reusable story participant. All traits except the name are optional.
type Character struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	FavoriteColor *string   `json:"favorite_color" db:"favorite_color"`
	AnimalFriend  *string   `json:"animal_friend" db:"animal_friend"`
	Superpower    *string   `json:"superpower" db:"superpower"`
	Hobby         *string   `json:"hobby" db:"hobby"`
	Personality   *string   `json:"personality" db:"personality"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CreateCharacterRequest is the body of POST /characters.
type CreateCharacterRequest struct {
	Name          string  `json:"name"`
	FavoriteColor *string `json:"favorite_color"`
	AnimalFriend  *string `json:"animal_friend"`
	Superpower    *string `json:"superpower"`
	Hobby         *string `json:"hobby"`
	Personality   *string `json:"personality"`
}

// Trait dereferences an optional trait, returning "" when unset.
func Trait(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
