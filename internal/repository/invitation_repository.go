package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"boardman-api/internal/domain"
)

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error)
	FindByBoardAndEmail(ctx context.Context, boardID uuid.UUID, email string) (*domain.Invitation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error
}

// invitationRepositoryImpl is the GORM implementation of InvitationRepository
type invitationRepositoryImpl struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new instance of InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

// Create creates a new invitation
func (r *invitationRepositoryImpl) Create(ctx context.Context, invitation *domain.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

// FindByID finds an invitation by its ID
func (r *invitationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
	var invitation domain.Invitation
	if err := r.db.WithContext(ctx).First(&invitation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindByBoardAndEmail finds the outstanding invitation for a (board, email) pair
func (r *invitationRepositoryImpl) FindByBoardAndEmail(ctx context.Context, boardID uuid.UUID, email string) (*domain.Invitation, error) {
	var invitation domain.Invitation
	if err := r.db.WithContext(ctx).
		First(&invitation, "board_id = ? AND member_email = ?", boardID, email).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// Delete deletes an invitation by ID
func (r *invitationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Invitation{}, "id = ?", id).Error
}

// DeleteByBoardID deletes all invitations of a board
func (r *invitationRepositoryImpl) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Invitation{}, "board_id = ?", boardID).Error
}
