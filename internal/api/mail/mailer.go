// Package mail delivers transactional email for the API. The only message
// kind today is the account verification email sent on sign-up.
package mail

import (
	"context"
	"log/slog"
)

// Mailer sends transactional mail. Implementations must be safe for
// concurrent use; sign-up dispatches from a goroutine.
type Mailer interface {
	// SendVerification sends the email confirmation code to a new account.
	SendVerification(ctx context.Context, to, username, code string) error
}

// LogMailer writes the message to the log instead of sending it. Used in
// development and tests where no SMTP server is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerification(ctx context.Context, to, username, code string) error {
	m.logger.InfoContext(ctx, "verification email (log mailer, not sent)",
		"to", to,
		"username", username,
		"code", code,
	)
	return nil
}
