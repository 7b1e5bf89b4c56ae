package dto

import "github.com/google/uuid"

// CreateBoardRequest represents the request to create a new board.
// ownerId must match the authenticated caller.
type CreateBoardRequest struct {
	OwnerID     uuid.UUID `json:"ownerId" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
}

// UpdateBoardRequest represents the request to update a board's title and description
type UpdateBoardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// BoardResponse represents a board in API responses
type BoardResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// InviteUserRequest represents the request to invite a user to a board by email
type InviteUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// InviteResponse acknowledges a sent invitation
type InviteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
