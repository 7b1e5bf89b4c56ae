package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardman-api/internal/dto"
	"boardman-api/internal/response"
	"boardman-api/internal/service"
)

// CardHandler handles card endpoints
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// ListCards returns all cards on a board
func (h *CardHandler) ListCards(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), callerID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, cards)
}

// CreateCard creates a card on a board
func (h *CardHandler) CreateCard(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), callerID, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, card)
}

// UpdateCard updates a card's title and description
func (h *CardHandler) UpdateCard(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	cardID, ok := pathUUID(c, "cardId")
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), callerID, cardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, card)
}

// DeleteCard deletes a card and everything on it
func (h *CardHandler) DeleteCard(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	cardID, ok := pathUUID(c, "cardId")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(c.Request.Context(), callerID, cardID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
