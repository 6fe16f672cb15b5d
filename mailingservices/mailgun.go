package mailingservices

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/ashil31/Admin-Panel/config"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
	from   string
}

func (m *Mailgun) Init(conf *config.Config) {
	m.Client = mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey)
	m.from = conf.MgEmailFrom
}

// SendWelcomeMessage mails a newly registered admin. Returns the
// provider message id.
func (m *Mailgun) SendWelcomeMessage(recipient, subject string) (string, error) {
	if m.Client == nil {
		return "", fmt.Errorf("mailgun client not initialized")
	}
	body := "Your admin account is ready. Sign in to the dashboard to start reviewing submissions."
	message := m.Client.NewMessage(m.from, subject, body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		return "", err
	}
	return id, nil
}
