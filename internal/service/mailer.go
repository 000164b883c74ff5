package service

import (
	"context"

	"github.com/trailhead-app/trailhead/internal/logger"
)

// logMailer is the development Mailer: it writes the reset token to the log
// instead of delivering mail. Production deployments plug in a real
// implementation behind the same interface.
type logMailer struct {
	logger *logger.Logger
}

// NewLogMailer returns a Mailer that logs reset tokens instead of sending
// email.
func NewLogMailer(logger *logger.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	log := logger.FromContext(ctx)

	log.Info().
		Str("to", to).
		Str("reset_token", token).
		Msg("password reset token issued")

	return nil
}
