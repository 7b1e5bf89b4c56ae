package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"boardman-api/internal/client"
	"boardman-api/internal/domain"
	"boardman-api/internal/dto"
	"boardman-api/internal/metrics"
	"boardman-api/internal/repository"
	"boardman-api/internal/response"
)

const (
	// codeValidity is how long a one-time code stays valid
	codeValidity = 15 * time.Minute
	// codeRetention keeps expired codes around so verification can report
	// expiry instead of a generic miss
	codeRetention = 24 * time.Hour
)

// AuthService defines the interface for authentication business logic.
// SignUp and SignIn return the response body plus a pending session token;
// Verify exchanges a pending token for a full one.
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.PendingUserResponse, string, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.UserResponse, string, error)
	Verify(ctx context.Context, claims *Claims, req *dto.VerifyRequest) (*dto.UserResponse, string, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo repository.UserRepository
	codeRepo repository.CodeRepository
	mailer   client.Mailer
	tokens   TokenManager
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.CodeRepository,
	mailer client.Mailer,
	tokens TokenManager,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		codeRepo: codeRepo,
		mailer:   mailer,
		tokens:   tokens,
		metrics:  m,
		logger:   logger,
	}
}

// generateCode produces a 32-hex-char one-time code
func generateCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// SignUp creates a pending account for a new email and mails a one-time code
func (s *authServiceImpl) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.PendingUserResponse, string, error) {
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, "", response.NewAppError(response.ErrCodeValidation, "User already exists", "")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
	}

	name := req.Name
	if name == "" {
		name = req.Email
	}

	code, err := generateCode()
	if err != nil {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to generate code", err.Error())
	}

	pending := &domain.PendingCode{
		Name:       name,
		Email:      req.Email,
		Avatar:     req.Avatar,
		Code:       code,
		Expiration: time.Now().Add(codeValidity).UnixMilli(),
	}
	if err := s.codeRepo.Save(ctx, pending, codeRetention); err != nil {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to store code", err.Error())
	}

	if err := s.mailer.SendCode(ctx, req.Email, code); err != nil {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to send code", err.Error())
	}

	token, err := s.tokens.IssuePending(req.Email, req.GHToken)
	if err != nil {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	s.logger.Info("Sign-up code issued", zap.String("email", req.Email))

	return &dto.PendingUserResponse{
		Name:   name,
		Email:  req.Email,
		Avatar: req.Avatar,
	}, token, nil
}

// SignIn mails a fresh one-time code to an existing user
func (s *authServiceImpl) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.UserResponse, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", response.NewAppError(response.ErrCodeValidation, "User not found", "")
		}
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
	}

	code, err := generateCode()
	if err != nil {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to generate code", err.Error())
	}

	pending := &domain.PendingCode{
		Name:       user.Name,
		Email:      user.Email,
		Avatar:     user.Avatar,
		Code:       code,
		Expiration: time.Now().Add(codeValidity).UnixMilli(),
	}
	if err := s.codeRepo.Save(ctx, pending, codeRetention); err != nil {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to store code", err.Error())
	}

	if err := s.mailer.SendCode(ctx, req.Email, code); err != nil {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to send code", err.Error())
	}

	token, err := s.tokens.IssuePending(req.Email, req.GHToken)
	if err != nil {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	s.logger.Info("Sign-in code issued", zap.String("email", req.Email))

	return toUserResponse(user), token, nil
}

// Verify checks the submitted code against the pending record, then either
// promotes the existing user or materializes a new one
func (s *authServiceImpl) Verify(ctx context.Context, claims *Claims, req *dto.VerifyRequest) (*dto.UserResponse, string, error) {
	if req.Email != claims.Email {
		return nil, "", response.NewAppError(response.ErrCodeValidation, "Invalid request - different email from token", "")
	}

	pending, err := s.codeRepo.Find(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return nil, "", response.NewAppError(response.ErrCodeNotFound, "Invalid email", "")
		}
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to load code", err.Error())
	}

	if pending.Code != req.Code {
		if s.metrics != nil {
			s.metrics.IncrementVerification("invalid_code")
		}
		return nil, "", response.NewAppError(response.ErrCodeValidation, "Invalid code", "")
	}
	if pending.ExpiredAt(time.Now()) {
		if s.metrics != nil {
			s.metrics.IncrementVerification("expired")
		}
		return nil, "", response.NewAppError(response.ErrCodeCodeExpired, "Code expired. Please sign in again", "")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
	}

	if user == nil {
		// First verification: materialize the user from the pending record
		user = &domain.User{
			Name:   pending.Name,
			Email:  pending.Email,
			Avatar: pending.Avatar,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
		}
		s.logger.Info("User created", zap.String("email", user.Email), zap.String("user_id", user.ID.String()))
	}

	token, err := s.tokens.IssueSession(user.ID, claims.GHToken)
	if err != nil {
		return nil, "", response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	if err := s.codeRepo.Delete(ctx, req.Email); err != nil {
		s.logger.Warn("Failed to delete used code", zap.String("email", req.Email), zap.Error(err))
	}

	if s.metrics != nil {
		s.metrics.IncrementVerification("success")
	}

	return toUserResponse(user), token, nil
}

// toUserResponse maps a user entity to its API representation
func toUserResponse(user *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	}
}
