package mailer

import (
	"context"
	"fmt"

	"timealign/config"
	"timealign/pkg/app_errors"
	"timealign/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
	// Configured 回報是否有真正的寄信後端；notify API 以此決定回 503
	Configured() bool
}

// NewMailer 依設定建立 Mailer。provider "ses" 走 AWS SES，其餘走 noop。
func NewMailer(cfg config.MailConfig) Mailer {
	switch cfg.Provider {
	case "ses":
		awsCfg := aws.Config{
			Region: cfg.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			),
		}
		return &SESMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: cfg.FromAddress,
			fromName:    cfg.FromName,
		}
	default:
		if cfg.Provider != "noop" {
			logger.WithComponent("mailer").Warn("unknown mail provider, using noop", zap.String("provider", cfg.Provider))
		}
		return &NoopMailer{}
	}
}

type SESMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

func (m *SESMailer) Configured() bool { return true }

func (m *SESMailer) Send(ctx context.Context, to, subject, html, text string) error {
	source := m.fromAddress
	if m.fromName != "" {
		source = fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if html != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(html),
			Charset: aws.String("UTF-8"),
		}
	}
	if text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(text),
			Charset: aws.String("UTF-8"),
		}
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send email via SES: %w", err)
	}
	logger.WithComponent("mailer").Info("email sent", zap.String("to", to), zap.String("message_id", aws.ToString(result.MessageId)))
	return nil
}

// NoopMailer 未設定寄信後端時使用；Send 回傳 ErrMailerNotConfigured
type NoopMailer struct{}

func (m *NoopMailer) Configured() bool { return false }

func (m *NoopMailer) Send(ctx context.Context, to, subject, html, text string) error {
	logger.WithComponent("mailer").Info("email skipped (noop)", zap.String("to", to), zap.String("subject", subject))
	return app_errors.ErrMailerNotConfigured
}
