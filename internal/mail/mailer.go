package mail

import (
	"context"
	"log/slog"
	"strings"
)

// Invitation describes an e-mail asking someone to help care for a baby.
type Invitation struct {
	ToEmail      string
	ToName       string
	InviterName  string
	BabyName     string
	Relationship string
	SignupURL    string
}

type Mailer interface {
	SendInvitation(ctx context.Context, invitation Invitation) error
}

// LogMailer writes invitations to the application log instead of sending
// them. It is used when no sender address is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (mailer *LogMailer) SendInvitation(ctx context.Context, invitation Invitation) error {
	mailer.logger.InfoContext(ctx, "invitation e-mail skipped (mail disabled)",
		"to", invitation.ToEmail,
		"baby", invitation.BabyName,
		"relationship", strings.ToLower(invitation.Relationship),
	)
	return nil
}
