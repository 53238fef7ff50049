package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"github.com/you/coursefinder/domain"
	"go.uber.org/zap"
)

const sendTimeout = 15 * time.Second

// EmailConfig holds the SMTP relay settings
type EmailConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// EmailServiceImpl implements domain.EmailSender over SMTP with STARTTLS
type EmailServiceImpl struct {
	cfg    EmailConfig
	logger *zap.Logger
}

// NewEmailService creates a new SMTP email sender
func NewEmailService(cfg EmailConfig, logger *zap.Logger) domain.EmailSender {
	return &EmailServiceImpl{
		cfg:    cfg,
		logger: logger.With(zap.String("component", "email")),
	}
}

// SendEmail implements domain.EmailSender
func (s *EmailServiceImpl) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromEmail); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	// If the relay is not configured, log instead of sending
	if s.cfg.Host == "" {
		s.logger.Info("email delivery disabled, message not sent",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (s *EmailServiceImpl) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(sendTimeout),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}
