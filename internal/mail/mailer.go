// Package mail sends transactional email for the contact workflow.
//
// Every send is a single best-effort attempt. Callers that must not fail on
// mail problems log the returned error and move on; nothing here retries.
package mail

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/nexel-studio/agency-api/internal/config"
	"github.com/nexel-studio/agency-api/internal/model"
)

// Mailer is the outbound-mail surface consumed by services.
type Mailer interface {
	// ContactConfirmation thanks the submitter at their own address.
	ContactConfirmation(m *model.ContactMessage) error
	// OwnerNotification forwards the submission to the agency inbox.
	OwnerNotification(m *model.ContactMessage) error
	// Reply delivers a back-office reply to the submitter.
	Reply(to string, r model.Reply) error
}

// SMTP sends mail through a gomail dialer.
type SMTP struct {
	cfg    config.SMTPConfig
	owner  string
	logger *zap.Logger
}

// NewSMTP constructs a mailer for the configured provider.
func NewSMTP(cfg config.SMTPConfig, owner string, logger *zap.Logger) *SMTP {
	return &SMTP{cfg: cfg, owner: owner, logger: logger}
}

// ContactConfirmation sends the "we received your message" email.
func (s *SMTP) ContactConfirmation(m *model.ContactMessage) error {
	body := fmt.Sprintf(confirmationTemplate, html.EscapeString(firstName(m.Name)))
	return s.send(m.Email, "Thanks for reaching out to Nexel", body)
}

// OwnerNotification forwards the submitted fields to the agency inbox.
func (s *SMTP) OwnerNotification(m *model.ContactMessage) error {
	if strings.TrimSpace(s.owner) == "" {
		s.logger.Warn("owner inbox not configured, skip notification")
		return nil
	}
	body := fmt.Sprintf(notificationTemplate,
		html.EscapeString(m.Name),
		html.EscapeString(m.Email),
		html.EscapeString(m.Mobile),
		html.EscapeString(m.Description),
	)
	return s.send(s.owner, fmt.Sprintf("New inquiry from %s", m.Name), body)
}

// Reply delivers a back-office reply.
func (s *SMTP) Reply(to string, r model.Reply) error {
	body := fmt.Sprintf(replyTemplate, html.EscapeString(r.Body))
	return s.send(to, r.Subject, body)
}

func (s *SMTP) send(to, subject, htmlBody string) error {
	if s.cfg.Host == "" || s.cfg.User == "" || s.cfg.From == "" {
		s.logger.Warn("mail config missing, skip send", zap.String("subject", subject))
		return nil
	}
	if strings.TrimSpace(to) == "" {
		s.logger.Warn("mail recipient empty, skip send", zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// firstName trims the display name to its first word for the greeting.
func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}

const confirmationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #212121;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Hi %s,</h2>
    <p>Thanks for getting in touch with Nexel. We have received your message
    and one of us will get back to you within one business day.</p>
    <p>— The Nexel team</p>
  </div>
</body>
</html>`

const notificationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #212121;">
  <div style="max-width: 560px; margin: 0 auto; padding: 16px;">
    <h2>New contact-form submission</h2>
    <table cellpadding="6">
      <tr><td><b>Name</b></td><td>%s</td></tr>
      <tr><td><b>Email</b></td><td>%s</td></tr>
      <tr><td><b>Mobile</b></td><td>%s</td></tr>
    </table>
    <p>%s</p>
  </div>
</body>
</html>`

const replyTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #212121;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <p>%s</p>
    <p>— The Nexel team</p>
  </div>
</body>
</html>`
