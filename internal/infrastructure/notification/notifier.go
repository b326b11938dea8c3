package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v3"
	"go.uber.org/zap"
)

type Email struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers emails to users.
type Notifier interface {
	Send(ctx context.Context, email Email) error
}

// Mailgun sends through the Mailgun HTTP API.
type Mailgun struct {
	mg      mailgun.Mailgun
	sender  string
	timeout time.Duration
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{
		mg:      mailgun.NewMailgun(domain, apiKey),
		sender:  sender,
		timeout: 10 * time.Second,
	}
}

// WithAPIBase points the client at another Mailgun region or a test server.
// The client builds request paths below the versioned root, so a bare host
// gets the /v3 suffix appended.
func (m *Mailgun) WithAPIBase(base string) *Mailgun {
	m.mg.SetAPIBase(versionedBase(base))
	return m
}

func versionedBase(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, "/v3") {
		return base
	}
	return base + "/v3"
}

func (m *Mailgun) Send(ctx context.Context, email Email) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	message := m.mg.NewMessage(m.sender, email.Subject, email.Body, email.To)
	if _, _, err := m.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun: send to %s: %w", email.To, err)
	}
	return nil
}

// LogNotifier writes emails to the log; used when Mailgun is not configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, email Email) error {
	n.log.Info("email notification",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
	)
	return nil
}
