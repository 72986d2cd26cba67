// Package email sends the ranked offers of a run as an HTML report over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/logger"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/usecase"
)

// Config holds SMTP connection settings and the report route labels.
type Config struct {
	Host     string
	Port     int
	From     string
	Password string
	To       string

	// Origin, Destination, MaxPrice and Currency only label the report;
	// the filtering itself happened upstream.
	Origin      string
	Destination string
	MaxPrice    float64
	Currency    string
}

// Mailer implements usecase.Notifier over SMTP with PLAIN authentication.
type Mailer struct {
	cfg Config
	log *logger.Logger
}

// NewMailer creates a Mailer. It validates the settings eagerly so a
// misconfigured notifier fails at startup, not on the first good run.
func NewMailer(cfg Config, log *logger.Logger) (*Mailer, error) {
	if cfg.Host == "" || cfg.From == "" || cfg.To == "" {
		return nil, fmt.Errorf("mailer config: host, from and to are required")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("mailer config: invalid port %d", cfg.Port)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Mailer{cfg: cfg, log: log}, nil
}

// Send implements usecase.Notifier. It connects, authenticates, sends one
// message and closes the connection; the tracker sends at most a few
// messages per day, so no connection is kept open.
func (m *Mailer) Send(ctx context.Context, offers []domain.ValidatedOffer) error {
	body, err := renderReport(reportData{
		Origin:      m.cfg.Origin,
		Destination: m.cfg.Destination,
		MaxPrice:    m.cfg.MaxPrice,
		Currency:    m.cfg.Currency,
		Offers:      offers,
	})
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set sender %q: %w", m.cfg.From, err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("set recipient %q: %w", m.cfg.To, err)
	}
	msg.Subject(subjectFor(m.cfg.Origin, m.cfg.Destination, offers))
	msg.SetBodyString(mail.TypeTextHTML, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.From),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send report to %s: %w", m.cfg.To, err)
	}

	m.log.Info().
		Str("to", m.cfg.To).
		Int("offers", len(offers)).
		Msg("Report email sent")
	return nil
}

// Ensure Mailer implements usecase.Notifier at compile time.
var _ usecase.Notifier = (*Mailer)(nil)
