package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"boardman-api/internal/domain"
	"boardman-api/internal/dto"
	"boardman-api/internal/metrics"
	"boardman-api/internal/repository"
	"boardman-api/internal/response"
)

// TaskService defines the interface for task business logic, including
// assignments and GitHub attachments. Deleting a task is owner-only;
// everything else is open to board members.
type TaskService interface {
	GetTask(ctx context.Context, callerID, boardID, taskID uuid.UUID) (*dto.TaskResponse, error)
	ListTasks(ctx context.Context, callerID, boardID, cardID uuid.UUID) ([]*dto.TaskResponse, error)
	CreateTask(ctx context.Context, callerID, boardID, cardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, callerID, boardID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	MoveTask(ctx context.Context, callerID, boardID, taskID, newCardID uuid.UUID) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error
	Assign(ctx context.Context, callerID, boardID, taskID, assignee uuid.UUID) (*dto.AssignmentResponse, error)
	Unassign(ctx context.Context, callerID, boardID, taskID, memberID uuid.UUID) error
	AddAttachment(ctx context.Context, callerID, boardID, taskID uuid.UUID, req *dto.AddAttachmentRequest) (*dto.AttachmentResponse, error)
	RemoveAttachment(ctx context.Context, callerID, attachmentID uuid.UUID) error
}

// taskServiceImpl is the implementation of TaskService
type taskServiceImpl struct {
	taskRepo       repository.TaskRepository
	cardRepo       repository.CardRepository
	boardRepo      repository.BoardRepository
	membershipRepo repository.MembershipRepository
	assignmentRepo repository.AssignmentRepository
	attachmentRepo repository.AttachmentRepository
	txManager      repository.TxManager
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	cardRepo repository.CardRepository,
	boardRepo repository.BoardRepository,
	membershipRepo repository.MembershipRepository,
	assignmentRepo repository.AssignmentRepository,
	attachmentRepo repository.AttachmentRepository,
	txManager repository.TxManager,
	m *metrics.Metrics,
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:       taskRepo,
		cardRepo:       cardRepo,
		boardRepo:      boardRepo,
		membershipRepo: membershipRepo,
		assignmentRepo: assignmentRepo,
		attachmentRepo: attachmentRepo,
		txManager:      txManager,
		metrics:        m,
		logger:         logger,
	}
}

// GetTask returns one task, visible to board members
func (s *taskServiceImpl) GetTask(ctx context.Context, callerID, boardID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return nil, err
	}

	task, err := s.requireTaskOnBoard(ctx, boardID, taskID)
	if err != nil {
		return nil, err
	}

	return toTaskResponse(task), nil
}

// ListTasks returns all tasks on a card
func (s *taskServiceImpl) ListTasks(ctx context.Context, callerID, boardID, cardID uuid.UUID) ([]*dto.TaskResponse, error) {
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return nil, err
	}

	if _, err := s.requireCardOnBoard(ctx, boardID, cardID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByCardID(ctx, cardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load tasks", err.Error())
	}

	out := make([]*dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskResponse(task))
	}
	return out, nil
}

// CreateTask creates a task on a card
func (s *taskServiceImpl) CreateTask(ctx context.Context, callerID, boardID, cardID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return nil, err
	}

	if _, err := s.requireCardOnBoard(ctx, boardID, cardID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		CardID:      cardID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCreated()
	}
	s.logger.Info("Task created",
		zap.String("task_id", task.ID.String()),
		zap.String("card_id", cardID.String()),
	)

	return toTaskResponse(task), nil
}

// UpdateTask updates a task's title, description and status
func (s *taskServiceImpl) UpdateTask(ctx context.Context, callerID, boardID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return nil, err
	}

	task, err := s.requireTaskOnBoard(ctx, boardID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Status = domain.TaskStatus(req.Status)
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	return toTaskResponse(task), nil
}

// MoveTask reparents a task onto another card
func (s *taskServiceImpl) MoveTask(ctx context.Context, callerID, boardID, taskID, newCardID uuid.UUID) (*dto.TaskResponse, error) {
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return nil, err
	}

	task, err := s.requireTaskOnBoard(ctx, boardID, taskID)
	if err != nil {
		return nil, err
	}

	// The destination card must live on the same board
	if _, err := s.requireCardOnBoard(ctx, boardID, newCardID); err != nil {
		return nil, err
	}

	task.CardID = newCardID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move task", err.Error())
	}

	return toTaskResponse(task), nil
}

// DeleteTask removes a task with its assignments and attachments, board
// owner only
func (s *taskServiceImpl) DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Task not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}

	card, err := s.cardRepo.FindByID(ctx, task.CardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load card", err.Error())
	}

	board, err := s.boardRepo.FindByID(ctx, card.BoardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}
	if board.OwnerID != callerID {
		return response.NewAppError(response.ErrCodeForbidden, "Forbidden", "")
	}

	err = s.txManager.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Assignments.DeleteByTaskID(ctx, taskID); err != nil {
			return err
		}
		if err := r.Attachments.DeleteByTaskID(ctx, taskID); err != nil {
			return err
		}
		return r.Tasks.Delete(ctx, taskID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete task", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCascadeDelete("task")
	}
	s.logger.Info("Task deleted", zap.String("task_id", taskID.String()))

	return nil
}

// Assign links a member to a task. Assigning the same member twice conflicts.
func (s *taskServiceImpl) Assign(ctx context.Context, callerID, boardID, taskID, assignee uuid.UUID) (*dto.AssignmentResponse, error) {
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return nil, err
	}

	if _, err := s.requireTaskOnBoard(ctx, boardID, taskID); err != nil {
		return nil, err
	}

	_, err := s.assignmentRepo.FindByTaskAndMember(ctx, taskID, assignee)
	if err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Assignment already exists", "")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check assignment", err.Error())
	}

	assignment := &domain.Assignment{
		TaskID:   taskID,
		MemberID: assignee,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create assignment", err.Error())
	}

	return &dto.AssignmentResponse{
		TaskID:   taskID,
		MemberID: assignee,
	}, nil
}

// Unassign removes a member's assignment from a task
func (s *taskServiceImpl) Unassign(ctx context.Context, callerID, boardID, taskID, memberID uuid.UUID) error {
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return err
	}

	if _, err := s.requireTaskOnBoard(ctx, boardID, taskID); err != nil {
		return err
	}

	_, err := s.assignmentRepo.FindByTaskAndMember(ctx, taskID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Assignment not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to check assignment", err.Error())
	}

	if err := s.assignmentRepo.DeleteByTaskAndMember(ctx, taskID, memberID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete assignment", err.Error())
	}

	return nil
}

// AddAttachment links a GitHub object to a task. The type is fixed at creation.
func (s *taskServiceImpl) AddAttachment(ctx context.Context, callerID, boardID, taskID uuid.UUID, req *dto.AddAttachmentRequest) (*dto.AttachmentResponse, error) {
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return nil, err
	}

	if !domain.AttachmentType(req.Type).IsValid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid attachment type", "")
	}

	if _, err := s.requireTaskOnBoard(ctx, boardID, taskID); err != nil {
		return nil, err
	}

	attachment := &domain.Attachment{
		TaskID:  taskID,
		Type:    domain.AttachmentType(req.Type),
		Number:  req.Number,
		RepoID:  req.RepoID,
		RepoURL: req.RepoURL,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create attachment", err.Error())
	}

	return toAttachmentResponse(attachment), nil
}

// RemoveAttachment deletes an attachment. The caller must be a member of the
// board the attachment's task lives on.
func (s *taskServiceImpl) RemoveAttachment(ctx context.Context, callerID, attachmentID uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Attachment not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load attachment", err.Error())
	}

	task, err := s.taskRepo.FindByID(ctx, attachment.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Task not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}

	card, err := s.cardRepo.FindByID(ctx, task.CardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load card", err.Error())
	}

	if err := s.requireMembership(ctx, card.BoardID, callerID); err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment", err.Error())
	}

	return nil
}

// requireCardOnBoard loads a card and verifies it belongs to the board.
// Cards on other boards read as missing, so the id reveals nothing
// about another board's contents.
func (s *taskServiceImpl) requireCardOnBoard(ctx context.Context, boardID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load card", err.Error())
	}
	if card.BoardID != boardID {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
	}
	return card, nil
}

// requireTaskOnBoard loads a task and verifies it reaches the board through
// its card. The membership check gates the board; this anchors the task to it.
func (s *taskServiceImpl) requireTaskOnBoard(ctx context.Context, boardID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Task not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}
	card, err := s.cardRepo.FindByID(ctx, task.CardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Task not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load card", err.Error())
	}
	if card.BoardID != boardID {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Task not found", "")
	}
	return task, nil
}

// requireMembership fails with FORBIDDEN unless the user is a member of the board
func (s *taskServiceImpl) requireMembership(ctx context.Context, boardID, userID uuid.UUID) error {
	_, err := s.membershipRepo.FindByBoardAndMember(ctx, boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeForbidden, "Forbidden", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}
	return nil
}

// toTaskResponse maps a task entity to its API representation
func toTaskResponse(task *domain.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          task.ID,
		CardID:      task.CardID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
	}
}

// toAttachmentResponse maps an attachment entity to its API representation
func toAttachmentResponse(a *domain.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:      a.ID,
		TaskID:  a.TaskID,
		Type:    string(a.Type),
		Number:  a.Number,
		RepoID:  a.RepoID,
		RepoURL: a.RepoURL,
	}
}
