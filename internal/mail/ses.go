package mail

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"strings"
	texttemplate "text/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESClient is the subset of the SES v2 client used for sending.
type SESClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESMailer struct {
	client    SESClient
	fromEmail string
	fromName  string
	logger    *slog.Logger
}

type Config struct {
	Region    string
	FromEmail string
	FromName  string
}

// New returns an SES backed mailer, or a LogMailer when no sender address
// is configured.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Mailer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.FromEmail) == "" {
		logger.Info("mail disabled: SES_FROM_EMAIL not configured")
		return NewLogMailer(logger), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	logger.Info("mail enabled", "from", cfg.FromEmail, "region", cfg.Region)
	return NewSESMailer(sesv2.NewFromConfig(awsCfg), cfg.FromEmail, cfg.FromName, logger), nil
}

func NewSESMailer(client SESClient, fromEmail string, fromName string, logger *slog.Logger) *SESMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SESMailer{
		client:    client,
		fromEmail: strings.TrimSpace(fromEmail),
		fromName:  strings.TrimSpace(fromName),
		logger:    logger,
	}
}

var invitationHTML = htmltemplate.Must(htmltemplate.New("invitation_html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<p>Hi {{if .ToName}}{{.ToName}}{{else}}there{{end}},</p>
	<p>{{.InviterName}} invited you to help care for {{.BabyName}} as {{.Role}} on Cradle.</p>
	<p><a href="{{.SignupURL}}">Create your account</a> with this e-mail address to get started.</p>
	<p style="font-size: 12px; color: #666;">If you were not expecting this invitation you can ignore this e-mail.</p>
</body>
</html>
`))

var invitationText = texttemplate.Must(texttemplate.New("invitation_text").Parse(`Hi {{if .ToName}}{{.ToName}}{{else}}there{{end}},

{{.InviterName}} invited you to help care for {{.BabyName}} as {{.Role}} on Cradle.

Create your account with this e-mail address to get started:
{{.SignupURL}}

If you were not expecting this invitation you can ignore this e-mail.
`))

type invitationView struct {
	Invitation
	Role string
}

func (mailer *SESMailer) SendInvitation(ctx context.Context, invitation Invitation) error {
	view := invitationView{Invitation: invitation, Role: invitationRole(invitation.Relationship)}

	var htmlBody bytes.Buffer
	if err := invitationHTML.Execute(&htmlBody, view); err != nil {
		return fmt.Errorf("render invitation html: %w", err)
	}
	var textBody bytes.Buffer
	if err := invitationText.Execute(&textBody, view); err != nil {
		return fmt.Errorf("render invitation text: %w", err)
	}

	subject := fmt.Sprintf("You're invited to help care for %s", invitation.BabyName)
	return mailer.send(ctx, invitation.ToEmail, subject, htmlBody.String(), textBody.String())
}

func (mailer *SESMailer) send(ctx context.Context, toEmail string, subject string, htmlBody string, textBody string) error {
	fromAddress := mailer.fromEmail
	if mailer.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", mailer.fromName, mailer.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := mailer.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send email to %s: %w", toEmail, err)
	}

	mailer.logger.InfoContext(ctx, "email sent", "to", toEmail, "subject", subject)
	return nil
}

func invitationRole(relationship string) string {
	if strings.EqualFold(relationship, "PARENT") {
		return "a parent"
	}
	return "a caregiver"
}
