package dto

import "github.com/google/uuid"

// SignUpRequest represents the request to create a pending account.
// name and avatar default to the email / empty string when omitted.
type SignUpRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email" binding:"required,email"`
	Avatar  string `json:"avatar"`
	GHToken string `json:"ghToken"`
}

// SignInRequest represents the request to start a sign-in for an existing user
type SignInRequest struct {
	Email   string `json:"email" binding:"required,email"`
	GHToken string `json:"ghToken"`
}

// VerifyRequest represents the one-time-code verification request
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
}

// PendingUserResponse is returned by sign-up before verification,
// when no user id exists yet
type PendingUserResponse struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}
