package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/teambitewolf/news-hole/internal/config"
	"github.com/teambitewolf/news-hole/internal/constants"
	"github.com/teambitewolf/news-hole/internal/utils"
)

// Sender is a category of outgoing mail. Each category has its own
// configured from-address.
type Sender int

const (
	SenderPasswordReset Sender = iota
	SenderSupport
)

// String returns the sender category name
func (s Sender) String() string {
	switch s {
	case SenderPasswordReset:
		return "password_reset"
	case SenderSupport:
		return "support"
	default:
		return "unknown"
	}
}

// ErrUnknownSender is returned for a sender category with no from-address
var ErrUnknownSender = errors.New("unknown sender category")

// SendEmailRequest describes one outgoing message
type SendEmailRequest struct {
	Sender    Sender
	ToAddress string
	Subject   string
	Message   string
}

// SendEmailResponse reports the outcome of a send
type SendEmailResponse struct {
	Success bool
	Message string
}

// Transport delivers a single plain-text message
type Transport interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// EmailService sends email through a configured transport.
type EmailService struct {
	transport Transport
	senders   config.SenderConfig
}

// NewEmailService creates an EmailService for the configured provider
func NewEmailService(cfg *config.EmailSettings) (*EmailService, error) {
	var transport Transport

	switch cfg.Provider {
	case constants.EmailProviderLog, "":
		transport = &LogTransport{}
	case constants.EmailProviderSMTP:
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp host not configured")
		}
		transport = NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	case constants.EmailProviderSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid api key not configured")
		}
		transport = NewSendGridTransport(cfg.SendGridAPIKey)
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}

	log.Info().Str("provider", cfg.Provider).Msg("Email service configured")

	return NewEmailServiceWithTransport(transport, cfg.Senders), nil
}

// NewEmailServiceWithTransport creates an EmailService with an explicit transport
func NewEmailServiceWithTransport(transport Transport, senders config.SenderConfig) *EmailService {
	return &EmailService{
		transport: transport,
		senders:   senders,
	}
}

// GetSender returns the from-address configured for a sender category
func (s *EmailService) GetSender(sender Sender) (string, error) {
	var address string
	switch sender {
	case SenderPasswordReset:
		address = s.senders.PasswordReset
	case SenderSupport:
		address = s.senders.Support
	}
	if address == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownSender, sender)
	}
	return address, nil
}

// SendEmail delivers req. Failures are reported in the response, never as errors.
func (s *EmailService) SendEmail(ctx context.Context, req SendEmailRequest) SendEmailResponse {
	from, err := s.GetSender(req.Sender)
	if err != nil {
		log.Error().
			Str("sender", req.Sender.String()).
			Msg("Email not sent: unknown sender")
		return SendEmailResponse{Success: false, Message: constants.MsgEmailUnknownSender}
	}

	if err := s.transport.Send(ctx, from, req.ToAddress, req.Subject, req.Message); err != nil {
		log.Error().
			Err(err).
			Str("sender", req.Sender.String()).
			Str("to", utils.MaskEmail(req.ToAddress)).
			Msg("Failed to send email")
		return SendEmailResponse{Success: false, Message: constants.MsgEmailSendFailed}
	}

	log.Info().
		Str("sender", req.Sender.String()).
		Str("to", utils.MaskEmail(req.ToAddress)).
		Str("subject", req.Subject).
		Msg("Email sent")

	return SendEmailResponse{Success: true, Message: constants.MsgEmailSent}
}

// SendPasswordResetEmail sends the reset link for token to the given address
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toAddress, baseURL, token string) SendEmailResponse {
	return s.SendEmail(ctx, SendEmailRequest{
		Sender:    SenderPasswordReset,
		ToAddress: toAddress,
		Subject:   constants.MsgPasswordResetSubject,
		Message:   constants.MsgPasswordResetBody + BuildResetLink(baseURL, token),
	})
}

// BuildResetLink appends the token query parameter to the NewPassword page URL
func BuildResetLink(baseURL, token string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL + "?" + constants.QueryParamToken + "=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set(constants.QueryParamToken, token)
	u.RawQuery = q.Encode()
	return u.String()
}

// LogTransport writes a log line instead of sending mail. The body is never
// logged since it carries the reset link.
type LogTransport struct{}

// Send implements Transport
func (t *LogTransport) Send(_ context.Context, from, to, subject, _ string) error {
	log.Info().
		Str("from", from).
		Str("to", utils.MaskEmail(to)).
		Str("subject", subject).
		Msg("Email delivery skipped (log transport)")
	return nil
}

// SMTPTransport sends mail through an SMTP relay with PLAIN auth
type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPTransport creates an SMTPTransport
func NewSMTPTransport(host string, port int, username, password string) *SMTPTransport {
	if port == 0 {
		port = constants.DefaultSMTPPort
	}
	return &SMTPTransport{
		host:     host,
		port:     port,
		username: username,
		password: password,
		sendMail: smtp.SendMail,
	}
}

// Send implements Transport. net/smtp does not take a context, so the send
// runs in a goroutine and is abandoned when ctx is done.
func (t *SMTPTransport) Send(ctx context.Context, from, to, subject, body string) error {
	var auth smtp.Auth
	if t.username != "" {
		auth = smtp.PlainAuth("", t.username, t.password, t.host)
	}

	addr := net.JoinHostPort(t.host, strconv.Itoa(t.port))
	msg := buildMIMEMessage(from, to, subject, body)

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultSMTPTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- t.sendMail(addr, auth, from, []string{to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send aborted: %w", ctx.Err())
	}
}

// buildMIMEMessage renders a minimal RFC 5322 plain-text message
func buildMIMEMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// SendGridTransport sends mail through the SendGrid v3 API
type SendGridTransport struct {
	send func(ctx context.Context, message *mail.SGMailV3) (int, error)
}

// NewSendGridTransport creates a SendGridTransport for apiKey
func NewSendGridTransport(apiKey string) *SendGridTransport {
	client := sendgrid.NewSendClient(apiKey)
	return &SendGridTransport{
		send: func(ctx context.Context, message *mail.SGMailV3) (int, error) {
			response, err := client.SendWithContext(ctx, message)
			if err != nil {
				return 0, err
			}
			return response.StatusCode, nil
		},
	}
}

// Send implements Transport
func (t *SendGridTransport) Send(ctx context.Context, from, to, subject, body string) error {
	message := mail.NewSingleEmailPlainText(mail.NewEmail("", from), subject, mail.NewEmail("", to), body)

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultSendGridTimeout)
	defer cancel()

	statusCode, err := t.send(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if statusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d", statusCode)
	}

	log.Debug().Int("status_code", statusCode).Msg("SendGrid accepted message")
	return nil
}
