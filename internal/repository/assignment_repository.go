package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"boardman-api/internal/domain"
)

// AssignmentRepository defines the interface for assignment data access
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	FindByTaskAndMember(ctx context.Context, taskID, memberID uuid.UUID) (*domain.Assignment, error)
	FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Assignment, error)
	DeleteByTaskAndMember(ctx context.Context, taskID, memberID uuid.UUID) error
	DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error
	DeleteByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) error
	DeleteByTaskIDsAndMember(ctx context.Context, taskIDs []uuid.UUID, memberID uuid.UUID) error
}

// assignmentRepositoryImpl is the GORM implementation of AssignmentRepository
type assignmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new instance of AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

// Create creates a new assignment
func (r *assignmentRepositoryImpl) Create(ctx context.Context, assignment *domain.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// FindByTaskAndMember finds the assignment for a (task, member) pair
func (r *assignmentRepositoryImpl) FindByTaskAndMember(ctx context.Context, taskID, memberID uuid.UUID) (*domain.Assignment, error) {
	var assignment domain.Assignment
	if err := r.db.WithContext(ctx).
		First(&assignment, "task_id = ? AND member_id = ?", taskID, memberID).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByTaskID finds all assignments of a task
func (r *assignmentRepositoryImpl) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Assignment, error) {
	var assignments []*domain.Assignment
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// DeleteByTaskAndMember deletes the assignment for a (task, member) pair
func (r *assignmentRepositoryImpl) DeleteByTaskAndMember(ctx context.Context, taskID, memberID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Assignment{}, "task_id = ? AND member_id = ?", taskID, memberID).Error
}

// DeleteByTaskID deletes all assignments of a task
func (r *assignmentRepositoryImpl) DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Assignment{}, "task_id = ?", taskID).Error
}

// DeleteByTaskIDs deletes all assignments whose task is in taskIDs
func (r *assignmentRepositoryImpl) DeleteByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Delete(&domain.Assignment{}, "task_id IN ?", taskIDs).Error
}

// DeleteByTaskIDsAndMember deletes a member's assignments on the given tasks only
func (r *assignmentRepositoryImpl) DeleteByTaskIDsAndMember(ctx context.Context, taskIDs []uuid.UUID, memberID uuid.UUID) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Delete(&domain.Assignment{}, "task_id IN ? AND member_id = ?", taskIDs, memberID).Error
}
