package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations. All sends are
// best-effort from the caller's point of view: callers log failures and
// carry on.
type EmailService interface {
	SendRegistrationConfirmation(toEmail, toName, meetingTitle string, meetingDate time.Time) error
	SendMeetingReminder(toEmail, toName, meetingTitle string, meetingDate time.Time) error
	SendNewMeetingAnnouncement(toEmail, toName, meetingTitle string, meetingDate time.Time) error
	SendPasswordResetEmail(toEmail, toName, token string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for the application
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

const dateLayout = "Monday, January 2, 2006 at 3:04 PM"

// SendRegistrationConfirmation confirms a meeting registration
func (s *EmailServiceImpl) SendRegistrationConfirmation(toEmail, toName, meetingTitle string, meetingDate time.Time) error {
	if s.devModeLog("registration confirmation", toEmail, meetingTitle) {
		return nil
	}
	subject := fmt.Sprintf("Registration Confirmed: %s - Liqa", meetingTitle)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">You're registered!</h2>
				<p>Hello %s,</p>
				<p>Your registration for <strong>%s</strong> has been confirmed.</p>

				<p>The meeting takes place on <strong>%s</strong>.</p>

				<p>We'll send you a reminder before it starts.</p>

				<p>Best regards,<br>The Liqa Team</p>
			</div>
		</body>
		</html>
	`, toName, meetingTitle, meetingDate.Format(dateLayout))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendMeetingReminder reminds a registered user about an upcoming meeting
func (s *EmailServiceImpl) SendMeetingReminder(toEmail, toName, meetingTitle string, meetingDate time.Time) error {
	if s.devModeLog("meeting reminder", toEmail, meetingTitle) {
		return nil
	}
	subject := fmt.Sprintf("Reminder: %s is coming up - Liqa", meetingTitle)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Your meeting is coming up</h2>
				<p>Hello %s,</p>
				<p>This is a reminder that <strong>%s</strong> starts on <strong>%s</strong>.</p>

				<p>See you there!</p>

				<p>Best regards,<br>The Liqa Team</p>
			</div>
		</body>
		</html>
	`, toName, meetingTitle, meetingDate.Format(dateLayout))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendNewMeetingAnnouncement announces a newly scheduled meeting
func (s *EmailServiceImpl) SendNewMeetingAnnouncement(toEmail, toName, meetingTitle string, meetingDate time.Time) error {
	if s.devModeLog("new meeting announcement", toEmail, meetingTitle) {
		return nil
	}
	subject := fmt.Sprintf("New Meeting: %s - Liqa", meetingTitle)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">A new meeting has been scheduled</h2>
				<p>Hello %s,</p>
				<p><strong>%s</strong> has just been scheduled for <strong>%s</strong>.</p>

				<p>Log in to Liqa to register.</p>

				<p>Best regards,<br>The Liqa Team</p>
			</div>
		</body>
		</html>
	`, toName, meetingTitle, meetingDate.Format(dateLayout))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendPasswordResetEmail sends an email with a password reset link/token
func (s *EmailServiceImpl) SendPasswordResetEmail(toEmail, toName, token string) error {
	// If username or password is empty, log the email and token (for development only)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Str("resetURL", fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)).
			Msg("SMTP credentials not configured - password reset email not sent. Use the token/URL above for testing.")

		return nil
	}
	subject := "Reset Your Password - Liqa"

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset Request</h2>
				<p>Hello %s,</p>
				<p>We received a request to reset your Liqa password. Click the button below to choose a new one:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
				</div>

				<p>This link will expire in 1 hour.</p>

				<p>If you did not request a password reset, please ignore this email.</p>

				<p>Best regards,<br>The Liqa Team</p>
			</div>
		</body>
		</html>
	`, toName, resetURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// devModeLog reports whether SMTP is unconfigured, logging the would-be
// send so developers can see what happened.
func (s *EmailServiceImpl) devModeLog(kind, toEmail, meetingTitle string) bool {
	if s.config.Username != "" && s.config.Password != "" {
		return false
	}
	s.logger.Warn().
		Str("toEmail", toEmail).
		Str("meetingTitle", meetingTitle).
		Msgf("SMTP credentials not configured - %s not sent.", kind)
	return true
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	// Set up authentication information
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	// Set up email headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	// Construct message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		// Simple SMTP without TLS
		if err := smtp.SendMail(
			serverAddress,
			auth,
			s.config.FromEmail,
			[]string{toEmail},
			[]byte(message),
		); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         s.config.Host,
	}

	// Connect to the SMTP server with TLS
	conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}
