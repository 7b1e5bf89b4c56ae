package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles all relational repositories bound to one connection
// or transaction
type Repositories struct {
	Users       UserRepository
	Boards      BoardRepository
	Memberships MembershipRepository
	Invitations InvitationRepository
	Cards       CardRepository
	Tasks       TaskRepository
	Assignments AssignmentRepository
	Attachments AttachmentRepository
}

// NewRepositories constructs the full repository set on db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Boards:      NewBoardRepository(db),
		Memberships: NewMembershipRepository(db),
		Invitations: NewInvitationRepository(db),
		Cards:       NewCardRepository(db),
		Tasks:       NewTaskRepository(db),
		Assignments: NewAssignmentRepository(db),
		Attachments: NewAttachmentRepository(db),
	}
}

// TxManager runs a function against a repository set bound to a single
// database transaction. Multi-entity writes (board creation with its owner
// membership, cascade deletes) go through here so a failure anywhere rolls
// the whole sequence back.
type TxManager interface {
	Do(ctx context.Context, fn func(r *Repositories) error) error
}

// gormTxManager is the GORM implementation of TxManager
type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by db
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// Do executes fn inside a database transaction
func (m *gormTxManager) Do(ctx context.Context, fn func(r *Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
