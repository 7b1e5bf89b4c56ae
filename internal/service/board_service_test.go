package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"boardman-api/internal/domain"
	"boardman-api/internal/dto"
	"boardman-api/internal/repository"
	"boardman-api/internal/response"
)

// boardServiceFixture wires a board service onto shared mocks so tests can
// observe calls both direct and inside transactions.
type boardServiceFixture struct {
	boards      *MockBoardRepository
	memberships *MockMembershipRepository
	invitations *MockInvitationRepository
	users       *MockUserRepository
	cards       *MockCardRepository
	tasks       *MockTaskRepository
	assignments *MockAssignmentRepository
	attachments *MockAttachmentRepository
	mailer      *MockMailer
	svc         BoardService
}

func newBoardServiceFixture() *boardServiceFixture {
	f := &boardServiceFixture{
		boards:      &MockBoardRepository{},
		memberships: &MockMembershipRepository{},
		invitations: &MockInvitationRepository{},
		users:       &MockUserRepository{},
		cards:       &MockCardRepository{},
		tasks:       &MockTaskRepository{},
		assignments: &MockAssignmentRepository{},
		attachments: &MockAttachmentRepository{},
		mailer:      &MockMailer{},
	}
	tx := &MockTxManager{Repos: &repository.Repositories{
		Users:       f.users,
		Boards:      f.boards,
		Memberships: f.memberships,
		Invitations: f.invitations,
		Cards:       f.cards,
		Tasks:       f.tasks,
		Assignments: f.assignments,
		Attachments: f.attachments,
	}}
	logger, _ := zap.NewDevelopment()
	f.svc = NewBoardService(f.boards, f.memberships, f.invitations, f.users,
		tx, f.mailer, "http://localhost:5173", nil, logger)
	return f
}

func wantAppError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want code %v", code)
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v, want *response.AppError", err)
	}
	if appErr.Code != code {
		t.Errorf("error code = %v, want %v", appErr.Code, code)
	}
}

func TestBoardService_CreateBoard(t *testing.T) {
	callerID := uuid.New()

	t.Run("creates the board with its owner membership", func(t *testing.T) {
		f := newBoardServiceFixture()

		boardID := uuid.New()
		f.boards.CreateFunc = func(ctx context.Context, board *domain.Board) error {
			board.ID = boardID
			return nil
		}

		var savedMembership *domain.Membership
		f.memberships.CreateFunc = func(ctx context.Context, membership *domain.Membership) error {
			savedMembership = membership
			return nil
		}

		got, err := f.svc.CreateBoard(context.Background(), callerID, &dto.CreateBoardRequest{
			OwnerID:     callerID,
			Title:       "Roadmap",
			Description: "Q3 work",
		})
		if err != nil {
			t.Fatalf("CreateBoard() unexpected error = %v", err)
		}
		if got.ID != boardID || got.OwnerID != callerID {
			t.Errorf("CreateBoard() = %+v, want board %v owned by %v", got, boardID, callerID)
		}
		if savedMembership == nil {
			t.Fatal("CreateBoard() did not create the owner membership")
		}
		if savedMembership.BoardID != boardID || savedMembership.MemberID != callerID {
			t.Errorf("owner membership = %+v, want board %v member %v", savedMembership, boardID, callerID)
		}
	})

	t.Run("ownerId differing from caller is forbidden", func(t *testing.T) {
		f := newBoardServiceFixture()
		_, err := f.svc.CreateBoard(context.Background(), callerID, &dto.CreateBoardRequest{
			OwnerID:     uuid.New(),
			Title:       "Roadmap",
			Description: "Q3 work",
		})
		wantAppError(t, err, response.ErrCodeForbidden)
	})

	t.Run("membership failure rolls into one error", func(t *testing.T) {
		f := newBoardServiceFixture()
		f.memberships.CreateFunc = func(ctx context.Context, membership *domain.Membership) error {
			return errors.New("unique violation")
		}
		_, err := f.svc.CreateBoard(context.Background(), callerID, &dto.CreateBoardRequest{
			OwnerID:     callerID,
			Title:       "Roadmap",
			Description: "Q3 work",
		})
		wantAppError(t, err, response.ErrCodeInternal)
	})
}

func TestBoardService_GetBoard(t *testing.T) {
	callerID := uuid.New()
	boardID := uuid.New()

	t.Run("non-member is unauthorized", func(t *testing.T) {
		f := newBoardServiceFixture()
		f.memberships.FindByBoardAndMemberFunc = func(ctx context.Context, b, m uuid.UUID) (*domain.Membership, error) {
			return nil, gorm.ErrRecordNotFound
		}
		_, err := f.svc.GetBoard(context.Background(), callerID, boardID)
		wantAppError(t, err, response.ErrCodeUnauthorized)
		var appErr *response.AppError
		errors.As(err, &appErr)
		if appErr.Message != "Unauthorized request" {
			t.Errorf("GetBoard() message = %q, want 'Unauthorized request'", appErr.Message)
		}
	})

	t.Run("member sees the board", func(t *testing.T) {
		f := newBoardServiceFixture()
		f.boards.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: id}, Title: "Roadmap"}, nil
		}
		got, err := f.svc.GetBoard(context.Background(), callerID, boardID)
		if err != nil {
			t.Fatalf("GetBoard() unexpected error = %v", err)
		}
		if got.Title != "Roadmap" {
			t.Errorf("GetBoard() Title = %v, want Roadmap", got.Title)
		}
	})
}

func TestBoardService_DeleteBoard(t *testing.T) {
	ownerID := uuid.New()
	boardID := uuid.New()
	cardID := uuid.New()
	taskID := uuid.New()

	t.Run("cascades memberships, invitations, tasks, cards, board", func(t *testing.T) {
		f := newBoardServiceFixture()
		f.boards.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: id}, OwnerID: ownerID}, nil
		}
		f.cards.FindByBoardIDFunc = func(ctx context.Context, b uuid.UUID) ([]*domain.Card, error) {
			return []*domain.Card{{BaseModel: domain.BaseModel{ID: cardID}, BoardID: b}}, nil
		}
		f.tasks.FindByCardIDsFunc = func(ctx context.Context, cardIDs []uuid.UUID) ([]*domain.Task, error) {
			return []*domain.Task{{BaseModel: domain.BaseModel{ID: taskID}, CardID: cardID}}, nil
		}

		var order []string
		f.memberships.DeleteByBoardIDFunc = func(ctx context.Context, b uuid.UUID) error {
			order = append(order, "memberships")
			return nil
		}
		f.invitations.DeleteByBoardIDFunc = func(ctx context.Context, b uuid.UUID) error {
			order = append(order, "invitations")
			return nil
		}
		f.assignments.DeleteByTaskIDsFunc = func(ctx context.Context, taskIDs []uuid.UUID) error {
			order = append(order, "assignments")
			return nil
		}
		f.attachments.DeleteByTaskIDsFunc = func(ctx context.Context, taskIDs []uuid.UUID) error {
			order = append(order, "attachments")
			return nil
		}
		f.tasks.DeleteByCardIDsFunc = func(ctx context.Context, cardIDs []uuid.UUID) error {
			order = append(order, "tasks")
			return nil
		}
		f.cards.DeleteByBoardIDFunc = func(ctx context.Context, b uuid.UUID) error {
			order = append(order, "cards")
			return nil
		}
		f.boards.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "board")
			return nil
		}

		if err := f.svc.DeleteBoard(context.Background(), ownerID, boardID); err != nil {
			t.Fatalf("DeleteBoard() unexpected error = %v", err)
		}

		want := []string{"memberships", "invitations", "assignments", "attachments", "tasks", "cards", "board"}
		if len(order) != len(want) {
			t.Fatalf("DeleteBoard() touched %v, want %v", order, want)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("DeleteBoard() order = %v, want %v", order, want)
			}
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newBoardServiceFixture()
		f.boards.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: id}, OwnerID: ownerID}, nil
		}
		err := f.svc.DeleteBoard(context.Background(), uuid.New(), boardID)
		wantAppError(t, err, response.ErrCodeForbidden)
	})

	t.Run("missing board is not found", func(t *testing.T) {
		f := newBoardServiceFixture()
		f.boards.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return nil, gorm.ErrRecordNotFound
		}
		err := f.svc.DeleteBoard(context.Background(), ownerID, boardID)
		wantAppError(t, err, response.ErrCodeNotFound)
	})
}

func TestBoardService_InviteUser(t *testing.T) {
	ownerID := uuid.New()
	boardID := uuid.New()
	inviteeID := uuid.New()

	setupOwnedBoard := func(f *boardServiceFixture) {
		f.boards.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: id}, OwnerID: ownerID, Title: "Roadmap"}, nil
		}
		f.users.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{BaseModel: domain.BaseModel{ID: id}, Email: "owner@example.com"}, nil
		}
		f.users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{BaseModel: domain.BaseModel{ID: inviteeID}, Email: email}, nil
		}
	}

	t.Run("records the invitation and mails the links", func(t *testing.T) {
		f := newBoardServiceFixture()
		setupOwnedBoard(f)
		f.memberships.FindByBoardAndMemberFunc = func(ctx context.Context, b, m uuid.UUID) (*domain.Membership, error) {
			return nil, gorm.ErrRecordNotFound
		}
		f.invitations.FindByBoardAndEmailFunc = func(ctx context.Context, b uuid.UUID, email string) (*domain.Invitation, error) {
			return nil, gorm.ErrRecordNotFound
		}

		var saved *domain.Invitation
		f.invitations.CreateFunc = func(ctx context.Context, invitation *domain.Invitation) error {
			invitation.ID = uuid.New()
			saved = invitation
			return nil
		}

		mailed := false
		f.mailer.SendInvitationFunc = func(ctx context.Context, email, boardTitle, senderEmail, clientURL string, b, invitationID uuid.UUID) error {
			mailed = true
			if boardTitle != "Roadmap" || senderEmail != "owner@example.com" {
				t.Errorf("SendInvitation(title=%q, sender=%q), want Roadmap / owner@example.com", boardTitle, senderEmail)
			}
			if invitationID != saved.ID {
				t.Errorf("SendInvitation() invitation ID = %v, want %v", invitationID, saved.ID)
			}
			return nil
		}

		err := f.svc.InviteUser(context.Background(), ownerID, boardID, &dto.InviteUserRequest{Email: "invitee@example.com"})
		if err != nil {
			t.Fatalf("InviteUser() unexpected error = %v", err)
		}
		if saved == nil || !mailed {
			t.Errorf("InviteUser() saved=%v mailed=%v, want both", saved != nil, mailed)
		}
		if saved.BoardOwnerID != ownerID || saved.MemberEmail != "invitee@example.com" {
			t.Errorf("invitation = %+v", saved)
		}
	})

	t.Run("already a member", func(t *testing.T) {
		f := newBoardServiceFixture()
		setupOwnedBoard(f)
		f.memberships.FindByBoardAndMemberFunc = func(ctx context.Context, b, m uuid.UUID) (*domain.Membership, error) {
			return &domain.Membership{BoardID: b, MemberID: m}, nil
		}
		err := f.svc.InviteUser(context.Background(), ownerID, boardID, &dto.InviteUserRequest{Email: "invitee@example.com"})
		wantAppError(t, err, response.ErrCodeAlreadyMember)
	})

	t.Run("already invited", func(t *testing.T) {
		f := newBoardServiceFixture()
		setupOwnedBoard(f)
		f.memberships.FindByBoardAndMemberFunc = func(ctx context.Context, b, m uuid.UUID) (*domain.Membership, error) {
			return nil, gorm.ErrRecordNotFound
		}
		f.invitations.FindByBoardAndEmailFunc = func(ctx context.Context, b uuid.UUID, email string) (*domain.Invitation, error) {
			return &domain.Invitation{BoardID: b, MemberEmail: email}, nil
		}
		err := f.svc.InviteUser(context.Background(), ownerID, boardID, &dto.InviteUserRequest{Email: "invitee@example.com"})
		wantAppError(t, err, response.ErrCodeAlreadyInvited)
	})

	t.Run("invitee without an account is not found", func(t *testing.T) {
		f := newBoardServiceFixture()
		setupOwnedBoard(f)
		f.users.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return nil, gorm.ErrRecordNotFound
		}
		err := f.svc.InviteUser(context.Background(), ownerID, boardID, &dto.InviteUserRequest{Email: "nobody@example.com"})
		wantAppError(t, err, response.ErrCodeNotFound)
	})

	t.Run("non-owner cannot invite", func(t *testing.T) {
		f := newBoardServiceFixture()
		setupOwnedBoard(f)
		err := f.svc.InviteUser(context.Background(), uuid.New(), boardID, &dto.InviteUserRequest{Email: "invitee@example.com"})
		wantAppError(t, err, response.ErrCodeForbidden)
	})
}

func TestBoardService_AcceptInvitation(t *testing.T) {
	callerID := uuid.New()
	boardID := uuid.New()
	invitationID := uuid.New()

	setup := func(f *boardServiceFixture, invitedEmail, callerEmail string) {
		f.invitations.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
			return &domain.Invitation{
				BaseModel:   domain.BaseModel{ID: id},
				BoardID:     boardID,
				MemberEmail: invitedEmail,
			}, nil
		}
		f.boards.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: id}}, nil
		}
		f.users.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{BaseModel: domain.BaseModel{ID: id}, Email: callerEmail}, nil
		}
	}

	t.Run("creates a membership and consumes the invitation", func(t *testing.T) {
		f := newBoardServiceFixture()
		setup(f, "alice@example.com", "alice@example.com")

		var created *domain.Membership
		f.memberships.CreateFunc = func(ctx context.Context, membership *domain.Membership) error {
			created = membership
			return nil
		}
		deleted := false
		f.invitations.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		}

		if err := f.svc.AcceptInvitation(context.Background(), callerID, boardID, invitationID); err != nil {
			t.Fatalf("AcceptInvitation() unexpected error = %v", err)
		}
		if created == nil || created.BoardID != boardID || created.MemberID != callerID {
			t.Errorf("membership = %+v, want board %v member %v", created, boardID, callerID)
		}
		if !deleted {
			t.Error("AcceptInvitation() did not delete the invitation")
		}
	})

	t.Run("a different account cannot accept", func(t *testing.T) {
		f := newBoardServiceFixture()
		setup(f, "alice@example.com", "mallory@example.com")
		err := f.svc.AcceptInvitation(context.Background(), callerID, boardID, invitationID)
		wantAppError(t, err, response.ErrCodeForbidden)
	})

	t.Run("missing invitation is not found", func(t *testing.T) {
		f := newBoardServiceFixture()
		f.invitations.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
			return nil, gorm.ErrRecordNotFound
		}
		err := f.svc.AcceptInvitation(context.Background(), callerID, boardID, invitationID)
		wantAppError(t, err, response.ErrCodeNotFound)
	})
}

func TestBoardService_RejectInvitation(t *testing.T) {
	callerID := uuid.New()
	boardID := uuid.New()
	invitationID := uuid.New()

	f := newBoardServiceFixture()
	f.invitations.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
		return &domain.Invitation{BaseModel: domain.BaseModel{ID: id}, BoardID: boardID, MemberEmail: "alice@example.com"}, nil
	}
	f.boards.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
		return &domain.Board{BaseModel: domain.BaseModel{ID: id}}, nil
	}
	f.users.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return &domain.User{BaseModel: domain.BaseModel{ID: id}, Email: "alice@example.com"}, nil
	}

	membershipCreated := false
	f.memberships.CreateFunc = func(ctx context.Context, membership *domain.Membership) error {
		membershipCreated = true
		return nil
	}
	deleted := false
	f.invitations.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		deleted = true
		return nil
	}

	if err := f.svc.RejectInvitation(context.Background(), callerID, boardID, invitationID); err != nil {
		t.Fatalf("RejectInvitation() unexpected error = %v", err)
	}
	if membershipCreated {
		t.Error("RejectInvitation() created a membership")
	}
	if !deleted {
		t.Error("RejectInvitation() did not delete the invitation")
	}
}

func TestBoardService_RemoveMember(t *testing.T) {
	ownerID := uuid.New()
	memberID := uuid.New()
	boardID := uuid.New()
	cardID := uuid.New()
	taskID := uuid.New()

	setupOwnedBoard := func(f *boardServiceFixture) {
		f.boards.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: id}, OwnerID: ownerID}, nil
		}
	}

	t.Run("removes the membership and the member's assignments", func(t *testing.T) {
		f := newBoardServiceFixture()
		setupOwnedBoard(f)
		f.cards.FindByBoardIDFunc = func(ctx context.Context, b uuid.UUID) ([]*domain.Card, error) {
			return []*domain.Card{{BaseModel: domain.BaseModel{ID: cardID}, BoardID: b}}, nil
		}
		f.tasks.FindByCardIDsFunc = func(ctx context.Context, cardIDs []uuid.UUID) ([]*domain.Task, error) {
			return []*domain.Task{{BaseModel: domain.BaseModel{ID: taskID}, CardID: cardID}}, nil
		}

		var assignmentsCleared, membershipDeleted bool
		f.assignments.DeleteByTaskIDsAndMemberFunc = func(ctx context.Context, taskIDs []uuid.UUID, m uuid.UUID) error {
			assignmentsCleared = true
			if m != memberID {
				t.Errorf("assignments cleared for %v, want %v", m, memberID)
			}
			return nil
		}
		f.memberships.DeleteByBoardAndMemberFunc = func(ctx context.Context, b, m uuid.UUID) error {
			membershipDeleted = true
			return nil
		}

		if err := f.svc.RemoveMember(context.Background(), ownerID, boardID, memberID); err != nil {
			t.Fatalf("RemoveMember() unexpected error = %v", err)
		}
		if !assignmentsCleared || !membershipDeleted {
			t.Errorf("RemoveMember() assignments=%v membership=%v, want both cleared", assignmentsCleared, membershipDeleted)
		}
	})

	t.Run("owner cannot remove themselves", func(t *testing.T) {
		f := newBoardServiceFixture()
		setupOwnedBoard(f)
		err := f.svc.RemoveMember(context.Background(), ownerID, boardID, ownerID)
		wantAppError(t, err, response.ErrCodeForbidden)
		var appErr *response.AppError
		errors.As(err, &appErr)
		if appErr.Message != "Forbidden: Cannot remove yourself as owner" {
			t.Errorf("RemoveMember() message = %q", appErr.Message)
		}
	})

	t.Run("missing membership is not found", func(t *testing.T) {
		f := newBoardServiceFixture()
		setupOwnedBoard(f)
		f.memberships.FindByBoardAndMemberFunc = func(ctx context.Context, b, m uuid.UUID) (*domain.Membership, error) {
			return nil, gorm.ErrRecordNotFound
		}
		err := f.svc.RemoveMember(context.Background(), ownerID, boardID, memberID)
		wantAppError(t, err, response.ErrCodeNotFound)
	})
}

func TestBoardService_ListBoards(t *testing.T) {
	callerID := uuid.New()
	boardA := uuid.New()
	boardB := uuid.New()

	f := newBoardServiceFixture()
	f.memberships.FindByMemberIDFunc = func(ctx context.Context, memberID uuid.UUID) ([]*domain.Membership, error) {
		return []*domain.Membership{
			{BoardID: boardA, MemberID: memberID},
			{BoardID: boardB, MemberID: memberID},
		}, nil
	}
	f.boards.FindByIDsFunc = func(ctx context.Context, ids []uuid.UUID) ([]*domain.Board, error) {
		if len(ids) != 2 {
			t.Errorf("FindByIDs() got %d ids, want 2", len(ids))
		}
		out := make([]*domain.Board, 0, len(ids))
		for _, id := range ids {
			out = append(out, &domain.Board{BaseModel: domain.BaseModel{ID: id}})
		}
		return out, nil
	}

	boards, err := f.svc.ListBoards(context.Background(), callerID)
	if err != nil {
		t.Fatalf("ListBoards() unexpected error = %v", err)
	}
	if len(boards) != 2 {
		t.Errorf("ListBoards() returned %d boards, want 2", len(boards))
	}
}
