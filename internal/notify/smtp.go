package notify

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"carbontrack/internal/report"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPDispatcher sends reports as e-mail attachments.
type SMTPDispatcher struct {
	cfg SMTPConfig
}

// NewSMTPDispatcher creates an SMTPDispatcher.
func NewSMTPDispatcher(cfg SMTPConfig) *SMTPDispatcher {
	return &SMTPDispatcher{cfg: cfg}
}

func (d *SMTPDispatcher) Channel() string { return "smtp" }

func (d *SMTPDispatcher) Send(ctx context.Context, to string, doc *report.Document) error {
	msg, err := d.buildMessage(to, doc)
	if err != nil {
		return err
	}

	opts := []mail.Option{mail.WithPort(d.cfg.Port)}
	if d.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(d.cfg.Username),
			mail.WithPassword(d.cfg.Password),
		)
	}

	client, err := mail.NewClient(d.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (d *SMTPDispatcher) buildMessage(to string, doc *report.Document) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(d.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(reportSubject)
	msg.SetBodyString(mail.TypeTextPlain, reportBody)
	if err := msg.AttachReader(doc.Filename, bytes.NewReader(doc.Content)); err != nil {
		return nil, fmt.Errorf("attach report: %w", err)
	}
	return msg, nil
}
