package dto

import "github.com/google/uuid"

// CreateTaskRequest represents the request to create a task on a card
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,oneof=todo in-progress done canceled"`
}

// UpdateTaskRequest represents the request to update a task
type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=todo in-progress done canceled"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	CardID      uuid.UUID `json:"cardId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// AssignTaskRequest represents the request to assign a board member to a task
type AssignTaskRequest struct {
	Assignee uuid.UUID `json:"assignee" binding:"required"`
}

// AssignmentResponse represents a task assignment in API responses
type AssignmentResponse struct {
	TaskID   uuid.UUID `json:"taskId"`
	MemberID uuid.UUID `json:"memberId"`
}

// AddAttachmentRequest represents the request to link a GitHub object to a task
type AddAttachmentRequest struct {
	Type    string `json:"type" binding:"required,oneof=pull_request commit issue"`
	Number  string `json:"number" binding:"required"`
	RepoID  int64  `json:"repoId" binding:"required"`
	RepoURL string `json:"repoUrl" binding:"required,url"`
}

// AttachmentResponse represents a task attachment in API responses
type AttachmentResponse struct {
	ID      uuid.UUID `json:"id"`
	TaskID  uuid.UUID `json:"taskId"`
	Type    string    `json:"type"`
	Number  string    `json:"number"`
	RepoID  int64     `json:"repoId"`
	RepoURL string    `json:"repoUrl"`
}
