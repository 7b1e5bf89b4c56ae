package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"boardman-api/internal/domain"
)

// MembershipRepository defines the interface for membership data access
type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.Membership) error
	FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*domain.Membership, error)
	FindByBoardAndMember(ctx context.Context, boardID, memberID uuid.UUID) (*domain.Membership, error)
	DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error
	DeleteByBoardAndMember(ctx context.Context, boardID, memberID uuid.UUID) error
	CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error)
}

// membershipRepositoryImpl is the GORM implementation of MembershipRepository
type membershipRepositoryImpl struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new instance of MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepositoryImpl{db: db}
}

// Create creates a new membership
func (r *membershipRepositoryImpl) Create(ctx context.Context, membership *domain.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// FindByMemberID finds all memberships held by a user
func (r *membershipRepositoryImpl) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*domain.Membership, error) {
	var memberships []*domain.Membership
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// FindByBoardAndMember finds the membership for a (board, member) pair
func (r *membershipRepositoryImpl) FindByBoardAndMember(ctx context.Context, boardID, memberID uuid.UUID) (*domain.Membership, error) {
	var membership domain.Membership
	if err := r.db.WithContext(ctx).
		First(&membership, "board_id = ? AND member_id = ?", boardID, memberID).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// DeleteByBoardID deletes all memberships of a board
func (r *membershipRepositoryImpl) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Membership{}, "board_id = ?", boardID).Error
}

// DeleteByBoardAndMember deletes the membership for a (board, member) pair
func (r *membershipRepositoryImpl) DeleteByBoardAndMember(ctx context.Context, boardID, memberID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Membership{}, "board_id = ? AND member_id = ?", boardID, memberID).Error
}

// CountByBoardID counts the memberships of a board
func (r *membershipRepositoryImpl) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("board_id = ?", boardID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
