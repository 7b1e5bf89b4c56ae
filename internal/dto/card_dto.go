package dto

import "github.com/google/uuid"

// CreateCardRequest represents the request to create a card on a board
type CreateCardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// UpdateCardRequest represents the request to update a card's title and description
type UpdateCardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CardResponse represents a card in API responses
type CardResponse struct {
	ID          uuid.UUID `json:"id"`
	BoardID     uuid.UUID `json:"boardId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}
