package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardman-api/internal/dto"
	"boardman-api/internal/response"
	"boardman-api/internal/service"
)

// TaskHandler handles task, assignment and attachment endpoints
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// GetTask returns one task
func (h *TaskHandler) GetTask(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), callerID, boardID, taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// ListTasks returns all tasks on a card
func (h *TaskHandler) ListTasks(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	cardID, ok := pathUUID(c, "cardId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), callerID, boardID, cardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tasks)
}

// CreateTask creates a task on a card
func (h *TaskHandler) CreateTask(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	cardID, ok := pathUUID(c, "cardId")
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), callerID, boardID, cardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, task)
}

// UpdateTask updates a task's title, description and status
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), callerID, boardID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// MoveTask reparents a task onto the card named in the path
func (h *TaskHandler) MoveTask(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	newCardID, ok := pathUUID(c, "cardId")
	if !ok {
		return
	}

	task, err := h.taskService.MoveTask(c.Request.Context(), callerID, boardID, taskID, newCardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask deletes a task, board owner only
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), callerID, taskID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AssignTask assigns a member to a task
func (h *TaskHandler) AssignTask(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	assignment, err := h.taskService.Assign(c.Request.Context(), callerID, boardID, taskID, req.Assignee)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, assignment)
}

// UnassignTask removes a member's assignment from a task
func (h *TaskHandler) UnassignTask(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "memberId")
	if !ok {
		return
	}

	if err := h.taskService.Unassign(c.Request.Context(), callerID, boardID, taskID, memberID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddAttachment links a GitHub object to a task
func (h *TaskHandler) AddAttachment(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	var req dto.AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request")
		return
	}

	attachment, err := h.taskService.AddAttachment(c.Request.Context(), callerID, boardID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, attachment)
}

// RemoveAttachment deletes an attachment from a task
func (h *TaskHandler) RemoveAttachment(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}
	attachmentID, ok := pathUUID(c, "attachmentId")
	if !ok {
		return
	}

	if err := h.taskService.RemoveAttachment(c.Request.Context(), callerID, attachmentID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
