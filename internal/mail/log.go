package mail

import (
	"context"

	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
)

var _ model.Mailer = (*LogMailer)(nil)

// LogMailer writes invitations to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogMailer struct {
	logger *logger.Logger
}

func NewLogMailer(logger *logger.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendInvite(_ context.Context, email model.InviteEmail) error {
	m.logger.Info("Mailer: invite email",
		"to", email.To,
		"inviter", email.InviterEmail,
		"accept_url", email.AcceptURL,
		"expires_at", email.ExpiresAt)
	return nil
}
