package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"boardman-api/internal/dto"
	"boardman-api/internal/response"
	"boardman-api/internal/service"
)

// BoardHandler handles board, invitation and membership endpoints
type BoardHandler struct {
	boardService service.BoardService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// currentUserID reads the authenticated user's ID set by the auth middleware
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok
}

// pathUUID parses a path parameter as a UUID
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return uuid.Nil, false
	}
	return id, true
}

// ListBoards returns every board the caller belongs to
func (h *BoardHandler) ListBoards(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized request")
		return
	}

	boards, err := h.boardService.ListBoards(c.Request.Context(), callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, boards)
}

// GetBoard returns one board
func (h *BoardHandler) GetBoard(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized request")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), callerID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// CreateBoard creates a board owned by the caller
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized request")
		return
	}

	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), callerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, board)
}

// UpdateBoard updates a board's title and description
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized request")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	board, err := h.boardService.UpdateBoard(c.Request.Context(), callerID, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteBoard deletes a board and all of its contents
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized request")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), callerID, boardID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// InviteUser invites a user to a board by email
func (h *BoardHandler) InviteUser(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized request")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}

	var req dto.InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	if err := h.boardService.InviteUser(c.Request.Context(), callerID, boardID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, dto.InviteResponse{
		Success: true,
		Message: "Invite sent",
	})
}

// AcceptInvitation joins the caller to the board and consumes the invitation
func (h *BoardHandler) AcceptInvitation(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized request")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	invitationID, ok := pathUUID(c, "invitationId")
	if !ok {
		return
	}

	if err := h.boardService.AcceptInvitation(c.Request.Context(), callerID, boardID, invitationID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RejectInvitation consumes the invitation without joining
func (h *BoardHandler) RejectInvitation(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized request")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	invitationID, ok := pathUUID(c, "invitationId")
	if !ok {
		return
	}

	if err := h.boardService.RejectInvitation(c.Request.Context(), callerID, boardID, invitationID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveMember removes a member from a board, owner only
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized request")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "memberId")
	if !ok {
		return
	}

	if err := h.boardService.RemoveMember(c.Request.Context(), callerID, boardID, memberID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
