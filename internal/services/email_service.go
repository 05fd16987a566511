package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer delivers notification emails. Delivery is best-effort: callers
// fire it from a goroutine and only log failures.
type Mailer interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}

// AWSSESMailer sends emails using AWS SES
type AWSSESMailer struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

// NewAWSSESMailer creates a new AWS SES mailer
func NewAWSSESMailer(region, fromAddress string, logger *slog.Logger) (*AWSSESMailer, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESMailer{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// Send delivers one email via SES
func (m *AWSSESMailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(m.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := m.sesClient.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("email sent",
		slog.String("subject", subject),
		slog.String("message_id", aws.ToString(result.MessageId)))

	return nil
}

// TwoFactorLoginEmail builds the login-code message bodies
func TwoFactorLoginEmail(code string) (subject, textBody, htmlBody string) {
	subject = "Your 2FA Login Code"
	textBody = fmt.Sprintf("Your two-factor authentication code is %s", code)
	htmlBody = fmt.Sprintf("<b>Your two-factor authentication code is: %s</b>", code)
	return subject, textBody, htmlBody
}

// TwoFactorSetupEmail builds the enrollment-code message bodies
func TwoFactorSetupEmail(code string) (subject, textBody, htmlBody string) {
	subject = "Your 2FA Setup Code"
	textBody = fmt.Sprintf("Your two-factor authentication setup code is %s", code)
	htmlBody = fmt.Sprintf("<b>Your two-factor authentication setup code is: %s</b>", code)
	return subject, textBody, htmlBody
}
