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

// CardService defines the interface for card business logic.
// All operations require the caller to be a member of the card's board.
type CardService interface {
	ListCards(ctx context.Context, callerID, boardID uuid.UUID) ([]*dto.CardResponse, error)
	CreateCard(ctx context.Context, callerID, boardID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	UpdateCard(ctx context.Context, callerID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	DeleteCard(ctx context.Context, callerID, cardID uuid.UUID) error
}

// cardServiceImpl is the implementation of CardService
type cardServiceImpl struct {
	cardRepo       repository.CardRepository
	boardRepo      repository.BoardRepository
	membershipRepo repository.MembershipRepository
	txManager      repository.TxManager
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewCardService creates a new instance of CardService
func NewCardService(
	cardRepo repository.CardRepository,
	boardRepo repository.BoardRepository,
	membershipRepo repository.MembershipRepository,
	txManager repository.TxManager,
	m *metrics.Metrics,
	logger *zap.Logger,
) CardService {
	return &cardServiceImpl{
		cardRepo:       cardRepo,
		boardRepo:      boardRepo,
		membershipRepo: membershipRepo,
		txManager:      txManager,
		metrics:        m,
		logger:         logger,
	}
}

// ListCards returns all cards on a board
func (s *cardServiceImpl) ListCards(ctx context.Context, callerID, boardID uuid.UUID) ([]*dto.CardResponse, error) {
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load cards", err.Error())
	}

	out := make([]*dto.CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, toCardResponse(card))
	}
	return out, nil
}

// CreateCard creates a card on a board
func (s *cardServiceImpl) CreateCard(ctx context.Context, callerID, boardID uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	if _, err := s.boardRepo.FindByID(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}
	if err := s.requireMembership(ctx, boardID, callerID); err != nil {
		return nil, err
	}

	card := &domain.Card{
		BoardID:     boardID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create card", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCardCreated()
	}
	s.logger.Info("Card created",
		zap.String("card_id", card.ID.String()),
		zap.String("board_id", boardID.String()),
	)

	return toCardResponse(card), nil
}

// UpdateCard updates a card's title and description
func (s *cardServiceImpl) UpdateCard(ctx context.Context, callerID, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	card, err := s.requireCard(ctx, cardID, callerID)
	if err != nil {
		return nil, err
	}

	card.Title = req.Title
	card.Description = req.Description
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update card", err.Error())
	}

	return toCardResponse(card), nil
}

// DeleteCard removes a card and its tasks, with their attachments and
// assignments, in one transaction
func (s *cardServiceImpl) DeleteCard(ctx context.Context, callerID, cardID uuid.UUID) error {
	if _, err := s.requireCard(ctx, cardID, callerID); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(r *repository.Repositories) error {
		tasks, err := r.Tasks.FindByCardID(ctx, cardID)
		if err != nil {
			return err
		}
		if len(tasks) > 0 {
			taskIDs := make([]uuid.UUID, 0, len(tasks))
			for _, task := range tasks {
				taskIDs = append(taskIDs, task.ID)
			}
			if err := r.Attachments.DeleteByTaskIDs(ctx, taskIDs); err != nil {
				return err
			}
			if err := r.Assignments.DeleteByTaskIDs(ctx, taskIDs); err != nil {
				return err
			}
			if err := r.Tasks.DeleteByCardIDs(ctx, []uuid.UUID{cardID}); err != nil {
				return err
			}
		}
		return r.Cards.Delete(ctx, cardID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete card", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCascadeDelete("card")
	}
	s.logger.Info("Card deleted", zap.String("card_id", cardID.String()))

	return nil
}

// requireMembership fails with FORBIDDEN unless the user is a member of the board
func (s *cardServiceImpl) requireMembership(ctx context.Context, boardID, userID uuid.UUID) error {
	_, err := s.membershipRepo.FindByBoardAndMember(ctx, boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeForbidden, "Forbidden", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}
	return nil
}

// requireCard loads the card and checks the caller's membership on its board
func (s *cardServiceImpl) requireCard(ctx context.Context, cardID, callerID uuid.UUID) (*domain.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load card", err.Error())
	}
	if err := s.requireMembership(ctx, card.BoardID, callerID); err != nil {
		return nil, err
	}
	return card, nil
}

// toCardResponse maps a card entity to its API representation
func toCardResponse(card *domain.Card) *dto.CardResponse {
	return &dto.CardResponse{
		ID:          card.ID,
		BoardID:     card.BoardID,
		Title:       card.Title,
		Description: card.Description,
	}
}
