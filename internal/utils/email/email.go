package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/config"
)

// Sender delivers transactional mail. The auth flows treat it as an
// external collaborator: verification and reset mails surface errors,
// the welcome mail is fire-and-forget.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, firstName, token string) error
	SendWelcomeEmail(ctx context.Context, to, firstName string) error
	SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error
}

// Client sends mail over SMTP.
type Client struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

// NewClient creates an SMTP email client.
func NewClient(cfg config.EmailConfig, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

var verificationTmpl = template.Must(template.New("verification").Parse(`
<p>Hi {{.FirstName}},</p>
<p>Welcome to GlobeTrotter! Please confirm your email address by clicking the link below. The link expires in 24 hours.</p>
<p><a href="{{.Link}}">Verify my email</a></p>
`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<p>Hi {{.FirstName}},</p>
<p>Your email is verified. Time to plan your first trip!</p>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<p>Hi {{.FirstName}},</p>
<p>We received a request to reset your password. The link below expires in 1 hour. If you did not ask for this, ignore this email.</p>
<p><a href="{{.Link}}">Reset my password</a></p>
`))

// SendVerificationEmail mails the email-verification link.
func (c *Client) SendVerificationEmail(ctx context.Context, to, firstName, token string) error {
	link := fmt.Sprintf("%s/verify-email/%s", c.cfg.BaseURL, token)
	return c.send(ctx, to, "Verify your GlobeTrotter account", verificationTmpl, map[string]string{
		"FirstName": firstName,
		"Link":      link,
	})
}

// SendWelcomeEmail mails the post-verification welcome note.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, firstName string) error {
	return c.send(ctx, to, "Welcome to GlobeTrotter", welcomeTmpl, map[string]string{
		"FirstName": firstName,
	})
}

// SendPasswordResetEmail mails the password-reset link.
func (c *Client) SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error {
	link := fmt.Sprintf("%s/reset-password/%s", c.cfg.BaseURL, token)
	return c.send(ctx, to, "Reset your GlobeTrotter password", resetTmpl, map[string]string{
		"FirstName": firstName,
		"Link":      link,
	})
}

func (c *Client) send(ctx context.Context, to, subject string, tmpl *template.Template, data interface{}) error {
	if !c.cfg.Enabled {
		c.logger.Debug("Email sending disabled, dropping message",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	var message bytes.Buffer
	fmt.Fprintf(&message, "From: %s\r\n", c.cfg.From)
	fmt.Fprintf(&message, "To: %s\r\n", to)
	fmt.Fprintf(&message, "Subject: %s\r\n", subject)
	fmt.Fprintf(&message, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("\r\n")
	message.Write(body.Bytes())

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	if err := smtp.SendMail(addr, auth, c.cfg.From, []string{to}, message.Bytes()); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

var _ Sender = (*Client)(nil)
