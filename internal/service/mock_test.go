package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"boardman-api/internal/client"
	"boardman-api/internal/domain"
	"boardman-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc    func(ctx context.Context, board *domain.Board) error
	FindByIDFunc  func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]*domain.Board, error)
	UpdateFunc    func(ctx context.Context, board *domain.Board) error
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Board, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	CreateFunc                 func(ctx context.Context, membership *domain.Membership) error
	FindByMemberIDFunc         func(ctx context.Context, memberID uuid.UUID) ([]*domain.Membership, error)
	FindByBoardAndMemberFunc   func(ctx context.Context, boardID, memberID uuid.UUID) (*domain.Membership, error)
	DeleteByBoardIDFunc        func(ctx context.Context, boardID uuid.UUID) error
	DeleteByBoardAndMemberFunc func(ctx context.Context, boardID, memberID uuid.UUID) error
	CountByBoardIDFunc         func(ctx context.Context, boardID uuid.UUID) (int64, error)
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, membership)
	}
	return nil
}

func (m *MockMembershipRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*domain.Membership, error) {
	if m.FindByMemberIDFunc != nil {
		return m.FindByMemberIDFunc(ctx, memberID)
	}
	return nil, nil
}

func (m *MockMembershipRepository) FindByBoardAndMember(ctx context.Context, boardID, memberID uuid.UUID) (*domain.Membership, error) {
	if m.FindByBoardAndMemberFunc != nil {
		return m.FindByBoardAndMemberFunc(ctx, boardID, memberID)
	}
	return &domain.Membership{BoardID: boardID, MemberID: memberID}, nil
}

func (m *MockMembershipRepository) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	if m.DeleteByBoardIDFunc != nil {
		return m.DeleteByBoardIDFunc(ctx, boardID)
	}
	return nil
}

func (m *MockMembershipRepository) DeleteByBoardAndMember(ctx context.Context, boardID, memberID uuid.UUID) error {
	if m.DeleteByBoardAndMemberFunc != nil {
		return m.DeleteByBoardAndMemberFunc(ctx, boardID, memberID)
	}
	return nil
}

func (m *MockMembershipRepository) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	if m.CountByBoardIDFunc != nil {
		return m.CountByBoardIDFunc(ctx, boardID)
	}
	return 0, nil
}

// MockInvitationRepository is a mock implementation of InvitationRepository
type MockInvitationRepository struct {
	CreateFunc              func(ctx context.Context, invitation *domain.Invitation) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Invitation, error)
	FindByBoardAndEmailFunc func(ctx context.Context, boardID uuid.UUID, email string) (*domain.Invitation, error)
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	DeleteByBoardIDFunc     func(ctx context.Context, boardID uuid.UUID) error
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invitation)
	}
	return nil
}

func (m *MockInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockInvitationRepository) FindByBoardAndEmail(ctx context.Context, boardID uuid.UUID, email string) (*domain.Invitation, error) {
	if m.FindByBoardAndEmailFunc != nil {
		return m.FindByBoardAndEmailFunc(ctx, boardID, email)
	}
	return nil, nil
}

func (m *MockInvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockInvitationRepository) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	if m.DeleteByBoardIDFunc != nil {
		return m.DeleteByBoardIDFunc(ctx, boardID)
	}
	return nil
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	CreateFunc          func(ctx context.Context, card *domain.Card) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByBoardIDFunc   func(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error)
	UpdateFunc          func(ctx context.Context, card *domain.Card) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	DeleteByBoardIDFunc func(ctx context.Context, boardID uuid.UUID) error
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCardRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockCardRepository) Update(ctx context.Context, card *domain.Card) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCardRepository) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	if m.DeleteByBoardIDFunc != nil {
		return m.DeleteByBoardIDFunc(ctx, boardID)
	}
	return nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc          func(ctx context.Context, task *domain.Task) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByCardIDFunc    func(ctx context.Context, cardID uuid.UUID) ([]*domain.Task, error)
	FindByCardIDsFunc   func(ctx context.Context, cardIDs []uuid.UUID) ([]*domain.Task, error)
	UpdateFunc          func(ctx context.Context, task *domain.Task) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	DeleteByCardIDsFunc func(ctx context.Context, cardIDs []uuid.UUID) error
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByCardIDFunc != nil {
		return m.FindByCardIDFunc(ctx, cardID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByCardIDs(ctx context.Context, cardIDs []uuid.UUID) ([]*domain.Task, error) {
	if m.FindByCardIDsFunc != nil {
		return m.FindByCardIDsFunc(ctx, cardIDs)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) DeleteByCardIDs(ctx context.Context, cardIDs []uuid.UUID) error {
	if m.DeleteByCardIDsFunc != nil {
		return m.DeleteByCardIDsFunc(ctx, cardIDs)
	}
	return nil
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	CreateFunc                   func(ctx context.Context, assignment *domain.Assignment) error
	FindByTaskAndMemberFunc      func(ctx context.Context, taskID, memberID uuid.UUID) (*domain.Assignment, error)
	FindByTaskIDFunc             func(ctx context.Context, taskID uuid.UUID) ([]*domain.Assignment, error)
	DeleteByTaskAndMemberFunc    func(ctx context.Context, taskID, memberID uuid.UUID) error
	DeleteByTaskIDFunc           func(ctx context.Context, taskID uuid.UUID) error
	DeleteByTaskIDsFunc          func(ctx context.Context, taskIDs []uuid.UUID) error
	DeleteByTaskIDsAndMemberFunc func(ctx context.Context, taskIDs []uuid.UUID, memberID uuid.UUID) error
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, assignment)
	}
	return nil
}

func (m *MockAssignmentRepository) FindByTaskAndMember(ctx context.Context, taskID, memberID uuid.UUID) (*domain.Assignment, error) {
	if m.FindByTaskAndMemberFunc != nil {
		return m.FindByTaskAndMemberFunc(ctx, taskID, memberID)
	}
	return nil, nil
}

func (m *MockAssignmentRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Assignment, error) {
	if m.FindByTaskIDFunc != nil {
		return m.FindByTaskIDFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockAssignmentRepository) DeleteByTaskAndMember(ctx context.Context, taskID, memberID uuid.UUID) error {
	if m.DeleteByTaskAndMemberFunc != nil {
		return m.DeleteByTaskAndMemberFunc(ctx, taskID, memberID)
	}
	return nil
}

func (m *MockAssignmentRepository) DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	if m.DeleteByTaskIDFunc != nil {
		return m.DeleteByTaskIDFunc(ctx, taskID)
	}
	return nil
}

func (m *MockAssignmentRepository) DeleteByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) error {
	if m.DeleteByTaskIDsFunc != nil {
		return m.DeleteByTaskIDsFunc(ctx, taskIDs)
	}
	return nil
}

func (m *MockAssignmentRepository) DeleteByTaskIDsAndMember(ctx context.Context, taskIDs []uuid.UUID, memberID uuid.UUID) error {
	if m.DeleteByTaskIDsAndMemberFunc != nil {
		return m.DeleteByTaskIDsAndMemberFunc(ctx, taskIDs, memberID)
	}
	return nil
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc          func(ctx context.Context, attachment *domain.Attachment) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByTaskIDFunc    func(ctx context.Context, taskID uuid.UUID) ([]*domain.Attachment, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	DeleteByTaskIDFunc  func(ctx context.Context, taskID uuid.UUID) error
	DeleteByTaskIDsFunc func(ctx context.Context, taskIDs []uuid.UUID) error
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByTaskIDFunc != nil {
		return m.FindByTaskIDFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	if m.DeleteByTaskIDFunc != nil {
		return m.DeleteByTaskIDFunc(ctx, taskID)
	}
	return nil
}

func (m *MockAttachmentRepository) DeleteByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) error {
	if m.DeleteByTaskIDsFunc != nil {
		return m.DeleteByTaskIDsFunc(ctx, taskIDs)
	}
	return nil
}

// MockCodeRepository is an in-memory mock of CodeRepository
type MockCodeRepository struct {
	SaveFunc   func(ctx context.Context, code *domain.PendingCode, ttl time.Duration) error
	FindFunc   func(ctx context.Context, email string) (*domain.PendingCode, error)
	DeleteFunc func(ctx context.Context, email string) error
}

func (m *MockCodeRepository) Save(ctx context.Context, code *domain.PendingCode, ttl time.Duration) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, code, ttl)
	}
	return nil
}

func (m *MockCodeRepository) Find(ctx context.Context, email string) (*domain.PendingCode, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, email)
	}
	return nil, repository.ErrCodeNotFound
}

func (m *MockCodeRepository) Delete(ctx context.Context, email string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, email)
	}
	return nil
}

// MockTxManager runs transaction functions against a fixed repository set.
// Tests wire the same mocks they assert on into Repos so calls made inside
// the "transaction" are observable.
type MockTxManager struct {
	Repos  *repository.Repositories
	DoFunc func(ctx context.Context, fn func(r *repository.Repositories) error) error
}

func (m *MockTxManager) Do(ctx context.Context, fn func(r *repository.Repositories) error) error {
	if m.DoFunc != nil {
		return m.DoFunc(ctx, fn)
	}
	return fn(m.Repos)
}

// MockMailer is a mock implementation of client.Mailer
type MockMailer struct {
	SendCodeFunc       func(ctx context.Context, email, code string) error
	SendInvitationFunc func(ctx context.Context, email, boardTitle, senderEmail, clientURL string, boardID, invitationID uuid.UUID) error
}

func (m *MockMailer) SendCode(ctx context.Context, email, code string) error {
	if m.SendCodeFunc != nil {
		return m.SendCodeFunc(ctx, email, code)
	}
	return nil
}

func (m *MockMailer) SendInvitation(ctx context.Context, email, boardTitle, senderEmail, clientURL string, boardID, invitationID uuid.UUID) error {
	if m.SendInvitationFunc != nil {
		return m.SendInvitationFunc(ctx, email, boardTitle, senderEmail, clientURL, boardID, invitationID)
	}
	return nil
}

// MockGitHubClient is a mock implementation of client.GitHubClient
type MockGitHubClient struct {
	FetchRepoInfoFunc func(ctx context.Context, owner, repo, ghToken string) (*client.RepoInfo, error)
}

func (m *MockGitHubClient) FetchRepoInfo(ctx context.Context, owner, repo, ghToken string) (*client.RepoInfo, error) {
	if m.FetchRepoInfoFunc != nil {
		return m.FetchRepoInfoFunc(ctx, owner, repo, ghToken)
	}
	return &client.RepoInfo{}, nil
}
