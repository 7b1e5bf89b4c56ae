package client

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"boardman-api/internal/config"
)

// Mailer defines the interface for outbound transactional email
type Mailer interface {
	// SendCode delivers a one-time sign-in code
	SendCode(ctx context.Context, email, code string) error
	// SendInvitation delivers a board invitation with accept/reject links
	SendInvitation(ctx context.Context, email, boardTitle, senderEmail, clientURL string, boardID, invitationID uuid.UUID) error
}

// smtpMailer implements Mailer over plain SMTP with auth
type smtpMailer struct {
	host   string
	port   int
	user   string
	pass   string
	sender string
	logger *zap.Logger
}

// NewMailer creates a new SMTP mailer
func NewMailer(cfg *config.SMTPConfig, logger *zap.Logger) Mailer {
	return &smtpMailer{
		host:   cfg.Host,
		port:   cfg.Port,
		user:   cfg.Username,
		pass:   cfg.Password,
		sender: cfg.Sender,
		logger: logger,
	}
}

func (m *smtpMailer) SendCode(ctx context.Context, email, code string) error {
	subject := "One-time Sign-In Code"
	body := fmt.Sprintf("Use this code to sign in: %s", code)

	if err := m.send(email, subject, body); err != nil {
		m.logger.Error("Failed to send sign-in code",
			zap.String("email", email),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send code email: %w", err)
	}

	return nil
}

func (m *smtpMailer) SendInvitation(ctx context.Context, email, boardTitle, senderEmail, clientURL string, boardID, invitationID uuid.UUID) error {
	subject := "Board Invitation"
	body := fmt.Sprintf(
		"You have been invited to join %s on Boardman by %s.\n Use this link to accept the invitation. %s/boards/%s/invite/accept/%s\n Or use this link to reject the invitation. %s/boards/%s/invite/reject/%s",
		boardTitle, senderEmail,
		clientURL, boardID, invitationID,
		clientURL, boardID, invitationID,
	)

	if err := m.send(email, subject, body); err != nil {
		m.logger.Error("Failed to send invitation",
			zap.String("email", email),
			zap.String("board_id", boardID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send invitation email: %w", err)
	}

	return nil
}

func (m *smtpMailer) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.sender, to, subject, body))

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	return smtp.SendMail(addr, auth, m.sender, []string{to}, msg)
}
