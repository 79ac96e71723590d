package mail

import (
	"bytes"
	"context"
	"fmt"
	htmlTemplate "html/template"
	textTemplate "text/template"
	"time"

	"github.com/mangomarket/onboard/config"
	"github.com/mangomarket/onboard/services/logging"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const verificationHTMLTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="text-align: center; color: #333;">Welcome to {{.AppName}}!</h1>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 10px; text-align: center;">
    <h2 style="color: #333;">Hello {{.DisplayName}}!</h2>
    <p style="color: #666;">Your verification code is:</p>
    <div style="font-size: 32px; font-weight: bold; color: #f97316; letter-spacing: 4px; margin: 20px 0;">{{.Code}}</div>
    <p style="color: #666; font-size: 14px;">This code will expire in {{.Expiry}}.</p>
  </div>
  <p style="color: #666; text-align: center; font-size: 14px;">
    If you didn't request this verification code, please ignore this email.
  </p>
</div>`

const verificationTextTemplate = `Hello {{.DisplayName}},

Your {{.AppName}} verification code is: {{.Code}}

This code will expire in {{.Expiry}}.

If you didn't request this verification code, please ignore this email.`

type Service struct {
	config       *config.MailConfig
	appName      string
	client       *mail.Client
	htmlTemplate *htmlTemplate.Template
	textTemplate *textTemplate.Template
	logger       *logging.Service
}

func NewService(cfg *config.MailConfig, appName string, logger *logging.Service) (*Service, error) {
	logger.Info("initializing mail service",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("encryption", cfg.Encryption),
		zap.String("from_address", cfg.FromAddress))

	if cfg.FromAddress == "" {
		logger.Error("mail service initialization failed: FROM_ADDRESS is required")
		return nil, fmt.Errorf("ONBOARD_MAIL_FROM_ADDRESS is required")
	}

	clientOpts := []mail.Option{
		mail.WithPort(cfg.Port),
	}

	if cfg.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username))
	}
	if cfg.Password != "" {
		clientOpts = append(clientOpts, mail.WithPassword(cfg.Password))
	}

	switch cfg.Encryption {
	case "ssl":
		clientOpts = append(clientOpts, mail.WithSSL())
	case "none":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	if cfg.SendTimeout > 0 {
		clientOpts = append(clientOpts, mail.WithTimeout(cfg.SendTimeout))
	}

	client, err := mail.NewClient(cfg.Host, clientOpts...)
	if err != nil {
		logger.Error("failed to create mail client",
			zap.Error(err),
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port))
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	htmlTmpl, err := htmlTemplate.New("verification").Parse(verificationHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse verification HTML template: %w", err)
	}
	textTmpl, err := textTemplate.New("verification").Parse(verificationTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse verification text template: %w", err)
	}

	return &Service{
		config:       cfg,
		appName:      appName,
		client:       client,
		htmlTemplate: htmlTmpl,
		textTemplate: textTmpl,
		logger:       logger,
	}, nil
}

func (s *Service) NewMessage() (*mail.Msg, error) {
	message := mail.NewMsg()

	fromAddr := s.config.FromAddress
	if s.config.FromName != "" {
		fromAddr = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
	}

	if err := message.From(fromAddr); err != nil {
		return nil, fmt.Errorf("failed to set FROM address: %w", err)
	}

	return message, nil
}

// SendVerificationCode dispatches the signup code to the recipient. The send
// is bounded by the configured timeout so issuance never hangs on SMTP.
func (s *Service) SendVerificationCode(ctx context.Context, email, displayName, code string, expiry time.Duration) error {
	message, err := s.NewMessage()
	if err != nil {
		return err
	}

	if err := message.To(email); err != nil {
		s.logger.Error("failed to set TO address", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("failed to set TO address: %w", err)
	}

	message.Subject(fmt.Sprintf("Your %s Verification Code", s.appName))

	data := map[string]any{
		"AppName":     s.appName,
		"DisplayName": displayName,
		"Code":        code,
		"Expiry":      expiry.String(),
	}

	var htmlBuf bytes.Buffer
	if err := s.htmlTemplate.Execute(&htmlBuf, data); err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}
	var textBuf bytes.Buffer
	if err := s.textTemplate.Execute(&textBuf, data); err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	message.SetBodyString(mail.TypeTextHTML, htmlBuf.String())
	message.AddAlternativeString(mail.TypeTextPlain, textBuf.String())

	return s.Send(ctx, message)
}

func (s *Service) Send(ctx context.Context, message *mail.Msg) error {
	startTime := time.Now()
	err := s.client.DialAndSendWithContext(ctx, message)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("failed to send email",
			zap.Error(err),
			zap.Duration("attempt_duration", duration))
		return err
	}

	s.logger.Info("email sent successfully", zap.Duration("send_duration", duration))
	return nil
}
