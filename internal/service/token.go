package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the authenticated facts carried by a session token.
// A pending token (issued before code verification) has Email set and no
// UserID; a full session token has UserID set. GHToken rides along in both
// so it survives the verification exchange.
type Claims struct {
	UserID  *uuid.UUID
	Email   string
	GHToken string
}

// TokenManager issues and validates session tokens
type TokenManager interface {
	// IssuePending issues a token for an unverified sign-up/sign-in.
	// The embedded email prevents verifying a code for someone else.
	IssuePending(email, ghToken string) (string, error)
	// IssueSession issues a full session token for a verified user
	IssueSession(userID uuid.UUID, ghToken string) (string, error)
	// Parse validates a token and returns its claims
	Parse(tokenStr string) (*Claims, error)
}

// tokenClaims is the JWT wire shape
type tokenClaims struct {
	UserID  string `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
	GHToken string `json:"ghToken,omitempty"`
	jwt.RegisteredClaims
}

// jwtTokenManager signs tokens with HMAC-SHA256
type jwtTokenManager struct {
	secret     []byte
	pendingTTL time.Duration
	sessionTTL time.Duration
}

// NewTokenManager creates a TokenManager signing with secret
func NewTokenManager(secret string) TokenManager {
	return &jwtTokenManager{
		secret:     []byte(secret),
		pendingTTL: 24 * time.Hour,
		sessionTTL: 7 * 24 * time.Hour,
	}
}

func (m *jwtTokenManager) IssuePending(email, ghToken string) (string, error) {
	claims := tokenClaims{
		Email:   email,
		GHToken: ghToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.pendingTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *jwtTokenManager) IssueSession(userID uuid.UUID, ghToken string) (string, error) {
	claims := tokenClaims{
		UserID:  userID.String(),
		GHToken: ghToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *jwtTokenManager) Parse(tokenStr string) (*Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	out := &Claims{
		Email:   claims.Email,
		GHToken: claims.GHToken,
	}
	if claims.UserID != "" {
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id in token: %w", err)
		}
		out.UserID = &userID
	}
	return out, nil
}
