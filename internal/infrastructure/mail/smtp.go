package mail

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Config captures SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	FromAddr string
}

// SMTPMailer delivers plaintext emails over SMTP.
type SMTPMailer struct {
	client   *mail.Client
	fromName string
	fromAddr string
}

func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		fromName: cfg.FromName,
		fromAddr: cfg.FromAddr,
	}, nil
}

// Send delivers a single plaintext message. Failures surface to the caller
// so the reset flow can run its compensating write.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.fromAddr); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
