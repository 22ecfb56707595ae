package models

import "github.com/golang-jwt/jwt/v5"

// Claims are the JWT claims of an access token. The subject holds the user ID.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
