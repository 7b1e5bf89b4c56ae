package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"boardman-api/internal/client"
	"boardman-api/internal/domain"
	"boardman-api/internal/dto"
	"boardman-api/internal/metrics"
	"boardman-api/internal/repository"
	"boardman-api/internal/response"
)

// BoardService defines the interface for board business logic.
// callerID is the authenticated user on whose behalf the operation runs.
type BoardService interface {
	ListBoards(ctx context.Context, callerID uuid.UUID) ([]*dto.BoardResponse, error)
	GetBoard(ctx context.Context, callerID, boardID uuid.UUID) (*dto.BoardResponse, error)
	CreateBoard(ctx context.Context, callerID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	UpdateBoard(ctx context.Context, callerID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoard(ctx context.Context, callerID, boardID uuid.UUID) error
	InviteUser(ctx context.Context, callerID, boardID uuid.UUID, req *dto.InviteUserRequest) error
	AcceptInvitation(ctx context.Context, callerID, boardID, invitationID uuid.UUID) error
	RejectInvitation(ctx context.Context, callerID, boardID, invitationID uuid.UUID) error
	RemoveMember(ctx context.Context, callerID, boardID, memberID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo      repository.BoardRepository
	membershipRepo repository.MembershipRepository
	invitationRepo repository.InvitationRepository
	userRepo       repository.UserRepository
	txManager      repository.TxManager
	mailer         client.Mailer
	clientURL      string
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	membershipRepo repository.MembershipRepository,
	invitationRepo repository.InvitationRepository,
	userRepo repository.UserRepository,
	txManager repository.TxManager,
	mailer client.Mailer,
	clientURL string,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo:      boardRepo,
		membershipRepo: membershipRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		mailer:         mailer,
		clientURL:      clientURL,
		metrics:        m,
		logger:         logger,
	}
}

// ListBoards returns every board the caller holds a membership on
func (s *boardServiceImpl) ListBoards(ctx context.Context, callerID uuid.UUID) ([]*dto.BoardResponse, error) {
	memberships, err := s.membershipRepo.FindByMemberID(ctx, callerID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load memberships", err.Error())
	}
	if len(memberships) == 0 {
		return []*dto.BoardResponse{}, nil
	}

	boardIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		boardIDs = append(boardIDs, m.BoardID)
	}

	boards, err := s.boardRepo.FindByIDs(ctx, boardIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load boards", err.Error())
	}

	out := make([]*dto.BoardResponse, 0, len(boards))
	for _, b := range boards {
		out = append(out, toBoardResponse(b))
	}
	return out, nil
}

// GetBoard returns one board, visible to members only. A non-member gets
// UNAUTHORIZED here, not FORBIDDEN like the write paths.
func (s *boardServiceImpl) GetBoard(ctx context.Context, callerID, boardID uuid.UUID) (*dto.BoardResponse, error) {
	if _, err := s.membershipRepo.FindByBoardAndMember(ctx, boardID, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Unauthorized request", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}

	return toBoardResponse(board), nil
}

// CreateBoard creates a board and its owner membership atomically
func (s *boardServiceImpl) CreateBoard(ctx context.Context, callerID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if req.OwnerID != callerID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Forbidden", "")
	}

	board := &domain.Board{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
	}

	err := s.txManager.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Boards.Create(ctx, board); err != nil {
			return err
		}
		membership := &domain.Membership{
			BoardID:  board.ID,
			MemberID: req.OwnerID,
		}
		return r.Memberships.Create(ctx, membership)
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}
	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("owner_id", callerID.String()),
	)

	return toBoardResponse(board), nil
}

// UpdateBoard updates a board's title and description, owner only
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, callerID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	board, err := s.requireOwnedBoard(ctx, boardID, callerID)
	if err != nil {
		return nil, err
	}

	board.Title = req.Title
	board.Description = req.Description
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update board", err.Error())
	}

	return toBoardResponse(board), nil
}

// DeleteBoard removes a board and everything hanging off it in one
// transaction: memberships, invitations, the cards' tasks with their
// assignments and attachments, the cards, and finally the board itself.
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, callerID, boardID uuid.UUID) error {
	if _, err := s.requireOwnedBoard(ctx, boardID, callerID); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Memberships.DeleteByBoardID(ctx, boardID); err != nil {
			return err
		}
		if err := r.Invitations.DeleteByBoardID(ctx, boardID); err != nil {
			return err
		}

		cards, err := r.Cards.FindByBoardID(ctx, boardID)
		if err != nil {
			return err
		}
		if len(cards) > 0 {
			cardIDs := make([]uuid.UUID, 0, len(cards))
			for _, card := range cards {
				cardIDs = append(cardIDs, card.ID)
			}

			tasks, err := r.Tasks.FindByCardIDs(ctx, cardIDs)
			if err != nil {
				return err
			}
			if len(tasks) > 0 {
				taskIDs := make([]uuid.UUID, 0, len(tasks))
				for _, task := range tasks {
					taskIDs = append(taskIDs, task.ID)
				}
				if err := r.Assignments.DeleteByTaskIDs(ctx, taskIDs); err != nil {
					return err
				}
				if err := r.Attachments.DeleteByTaskIDs(ctx, taskIDs); err != nil {
					return err
				}
				if err := r.Tasks.DeleteByCardIDs(ctx, cardIDs); err != nil {
					return err
				}
			}
			if err := r.Cards.DeleteByBoardID(ctx, boardID); err != nil {
				return err
			}
		}

		return r.Boards.Delete(ctx, boardID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCascadeDelete("board")
	}
	s.logger.Info("Board deleted", zap.String("board_id", boardID.String()))

	return nil
}

// InviteUser records an invitation and mails accept/reject links, owner only
func (s *boardServiceImpl) InviteUser(ctx context.Context, callerID, boardID uuid.UUID, req *dto.InviteUserRequest) error {
	board, err := s.requireOwnedBoard(ctx, boardID, callerID)
	if err != nil {
		return err
	}

	sender, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Sender not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load sender", err.Error())
	}

	invitee, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	_, err = s.membershipRepo.FindByBoardAndMember(ctx, boardID, invitee.ID)
	if err == nil {
		return response.NewAppError(response.ErrCodeAlreadyMember, "User is already a member", "")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}

	_, err = s.invitationRepo.FindByBoardAndEmail(ctx, boardID, req.Email)
	if err == nil {
		return response.NewAppError(response.ErrCodeAlreadyInvited, "User has already been invited", "")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check invitation", err.Error())
	}

	invitation := &domain.Invitation{
		BoardOwnerID: callerID,
		BoardID:      boardID,
		MemberEmail:  req.Email,
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to create invitation", err.Error())
	}

	if err := s.mailer.SendInvitation(ctx, req.Email, board.Title, sender.Email, s.clientURL, boardID, invitation.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to send invitation", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementInvitationSent()
	}
	s.logger.Info("Invitation sent",
		zap.String("board_id", boardID.String()),
		zap.String("email", req.Email),
	)

	return nil
}

// AcceptInvitation turns an invitation into a membership atomically.
// Only the invited email's account may accept.
func (s *boardServiceImpl) AcceptInvitation(ctx context.Context, callerID, boardID, invitationID uuid.UUID) error {
	invitation, user, err := s.loadInvitation(ctx, callerID, boardID, invitationID)
	if err != nil {
		return err
	}
	if user.Email != invitation.MemberEmail {
		return response.NewAppError(response.ErrCodeForbidden, "Forbidden", "")
	}

	err = s.txManager.Do(ctx, func(r *repository.Repositories) error {
		membership := &domain.Membership{
			BoardID:  invitation.BoardID,
			MemberID: callerID,
		}
		if err := r.Memberships.Create(ctx, membership); err != nil {
			return err
		}
		return r.Invitations.Delete(ctx, invitationID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to accept invitation", err.Error())
	}

	s.logger.Info("Invitation accepted",
		zap.String("board_id", boardID.String()),
		zap.String("member_id", callerID.String()),
	)

	return nil
}

// RejectInvitation deletes an invitation without creating a membership
func (s *boardServiceImpl) RejectInvitation(ctx context.Context, callerID, boardID, invitationID uuid.UUID) error {
	invitation, user, err := s.loadInvitation(ctx, callerID, boardID, invitationID)
	if err != nil {
		return err
	}
	if user.Email != invitation.MemberEmail {
		return response.NewAppError(response.ErrCodeForbidden, "Forbidden", "")
	}

	if err := s.invitationRepo.Delete(ctx, invitationID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to reject invitation", err.Error())
	}

	return nil
}

// RemoveMember removes a membership and the member's assignments on the
// board's tasks, owner only. The owner cannot remove themselves.
func (s *boardServiceImpl) RemoveMember(ctx context.Context, callerID, boardID, memberID uuid.UUID) error {
	if _, err := s.requireOwnedBoard(ctx, boardID, callerID); err != nil {
		return err
	}
	if callerID == memberID {
		return response.NewAppError(response.ErrCodeForbidden, "Forbidden: Cannot remove yourself as owner", "")
	}

	_, err := s.membershipRepo.FindByBoardAndMember(ctx, boardID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Membership not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}

	err = s.txManager.Do(ctx, func(r *repository.Repositories) error {
		cards, err := r.Cards.FindByBoardID(ctx, boardID)
		if err != nil {
			return err
		}
		if len(cards) > 0 {
			cardIDs := make([]uuid.UUID, 0, len(cards))
			for _, card := range cards {
				cardIDs = append(cardIDs, card.ID)
			}
			tasks, err := r.Tasks.FindByCardIDs(ctx, cardIDs)
			if err != nil {
				return err
			}
			if len(tasks) > 0 {
				taskIDs := make([]uuid.UUID, 0, len(tasks))
				for _, task := range tasks {
					taskIDs = append(taskIDs, task.ID)
				}
				if err := r.Assignments.DeleteByTaskIDsAndMember(ctx, taskIDs, memberID); err != nil {
					return err
				}
			}
		}
		return r.Memberships.DeleteByBoardAndMember(ctx, boardID, memberID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove member", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCascadeDelete("membership")
	}
	s.logger.Info("Member removed",
		zap.String("board_id", boardID.String()),
		zap.String("member_id", memberID.String()),
	)

	return nil
}

// requireMembership fails with FORBIDDEN unless the user is a member of the board
func (s *boardServiceImpl) requireMembership(ctx context.Context, boardID, userID uuid.UUID) error {
	_, err := s.membershipRepo.FindByBoardAndMember(ctx, boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeForbidden, "Forbidden", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}
	return nil
}

// requireOwnedBoard loads the board and fails with FORBIDDEN unless the
// caller owns it
func (s *boardServiceImpl) requireOwnedBoard(ctx context.Context, boardID, callerID uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}
	if board.OwnerID != callerID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Forbidden", "")
	}
	return board, nil
}

// loadInvitation loads the invitation, board and caller for accept/reject
func (s *boardServiceImpl) loadInvitation(ctx context.Context, callerID, boardID, invitationID uuid.UUID) (*domain.Invitation, *domain.User, error) {
	invitation, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewAppError(response.ErrCodeNotFound, "Invitation not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to load invitation", err.Error())
	}

	if _, err := s.boardRepo.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}

	user, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	return invitation, user, nil
}

// toBoardResponse maps a board entity to its API representation
func toBoardResponse(board *domain.Board) *dto.BoardResponse {
	return &dto.BoardResponse{
		ID:          board.ID,
		OwnerID:     board.OwnerID,
		Title:       board.Title,
		Description: board.Description,
	}
}
