package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"net/smtp"
	"time"

	"candidate-pipeline-backend/config"
	"candidate-pipeline-backend/internal/domain"
	"candidate-pipeline-backend/pkg/logger"
)

var (
	// ErrNotConfigured is returned when no sender address is configured.
	ErrNotConfigured = errors.New("sender email is not configured")
	// ErrInvalidRecipient is returned for a syntactically invalid recipient.
	ErrInvalidRecipient = errors.New("invalid recipient email format")
)

// Mailer sends interview notifications over SMTP.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string

	// send is swappable in tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		send:      smtp.SendMail,
	}
}

// IsConfigured checks whether the mailer has a usable SMTP configuration.
func (m *Mailer) IsConfigured() bool {
	return m.host != "" && m.username != "" && m.fromEmail != ""
}

// Send delivers one HTML email. It fails before any network traffic when the
// sender is unset or the recipient address does not parse.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m.fromEmail == "" {
		return ErrNotConfigured
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecipient, to)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		m.fromEmail, to, subject, htmlBody,
	))

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := m.send(addr, auth, m.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

type interviewEmailData struct {
	FullName       string
	ClientName     string
	InterviewLevel string
	Date           string
	Time           string
	Duration       string
	ZoomLink       string
	Status         string
}

const scheduledTemplate = `<p>Hello {{.FullName}},</p>
<p>Hope you are doing well!</p>
<p>Thank you for your interest in the <b>{{.InterviewLevel}}</b> interview for our client <b>{{.ClientName}}</b>.</p>
<p>We're pleased to inform you that your profile has been shortlisted for screening.</p>
<p>Interview Details:</p>
<ul>
<li><b>Date:</b> {{.Date}}</li>
<li><b>Time:</b> {{.Time}}</li>
<li><b>Duration:</b> Approx. {{.Duration}}</li>
{{if .ZoomLink}}<li><b>Join Zoom Meeting:</b> <a href="{{.ZoomLink}}">Click here</a></li>{{end}}
</ul>
<p>Kindly confirm your availability by replying to this email.</p>
<p>Best regards,<br>The Interview Team</p>`

const updatedTemplate = `<p>Hello {{.FullName}},</p>
<p>Your interview has been rescheduled.</p>
<ul>
<li><b>New Date:</b> {{.Date}}</li>
<li><b>New Time:</b> {{.Time}}</li>
<li><b>Duration:</b> Approx. {{.Duration}}</li>
{{if .ZoomLink}}<li><b>New Zoom Link:</b> <a href="{{.ZoomLink}}">Click here to join</a></li>{{end}}
<li><b>Status:</b> {{.Status}}</li>
</ul>
<p>Please confirm your availability.</p>
<p>Best regards,<br>The Interview Team</p>`

var (
	scheduledTmpl = template.Must(template.New("scheduled").Parse(scheduledTemplate))
	updatedTmpl   = template.Must(template.New("updated").Parse(updatedTemplate))
)

// NotifyScheduled emails the candidate, the client (when known), and the
// submitting user about a freshly scheduled interview. Each recipient is sent
// independently; failures are joined and returned, never aborting the rest.
func (m *Mailer) NotifyScheduled(c *domain.Candidate) error {
	subject := "Interview Scheduled for " + c.FullName
	body, err := renderInterviewEmail(scheduledTmpl, c)
	if err != nil {
		return err
	}
	return m.fanOut(c, subject, body)
}

// NotifyUpdated emails the same recipients about a rescheduled interview.
func (m *Mailer) NotifyUpdated(c *domain.Candidate) error {
	subject := "Interview Update for " + c.FullName
	body, err := renderInterviewEmail(updatedTmpl, c)
	if err != nil {
		return err
	}
	return m.fanOut(c, subject, body)
}

func (m *Mailer) fanOut(c *domain.Candidate, subject, body string) error {
	log := logger.With("email")

	recipients := []string{c.CandidateEmailID}
	if c.ClientEmail != "" {
		recipients = append(recipients, c.ClientEmail)
	}
	if c.UserEmail != "" {
		recipients = append(recipients, c.UserEmail)
	}

	var errs []error
	for _, to := range recipients {
		if err := m.Send(to, subject, body); err != nil {
			log.Error("interview notification failed", "to", to, "error", err)
			errs = append(errs, err)
			continue
		}
		log.Info("interview notification sent", "to", to)
	}
	return errors.Join(errs...)
}

func renderInterviewEmail(tmpl *template.Template, c *domain.Candidate) (string, error) {
	data := interviewEmailData{
		FullName:   c.FullName,
		ClientName: c.ClientName,
		Status:     c.InterviewStatus(),
	}
	if c.InterviewLevel != nil {
		data.InterviewLevel = *c.InterviewLevel
	}
	if c.InterviewDateTime != nil {
		data.Date = c.InterviewDateTime.Format("2006-01-02")
		data.Time = c.InterviewDateTime.Format(time.Kitchen)
	}
	if c.Duration != nil {
		data.Duration = fmt.Sprintf("%d minutes", *c.Duration)
	}
	if c.ZoomLink != nil {
		data.ZoomLink = *c.ZoomLink
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}
