package types

import "github.com/golang-jwt/jwt/v5"

// Tokens is the access/refresh pair returned after a successful login.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// JWTClaims are the claims embedded in both access and refresh tokens.
type JWTClaims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}
