package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/smukkama/temp-monitor/internal/protocol"
	"github.com/smukkama/temp-monitor/pkg/config"
)

// EmailNotifier sends email notifications
type EmailNotifier struct {
	config *config.SMTPConfig
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(cfg *config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{config: cfg}
}

// SendAlertNotification sends an email for a fired threshold crossing
func (e *EmailNotifier) SendAlertNotification(alert *protocol.AlertNotification) error {
	subject := fmt.Sprintf("🌡️ Temperature Alert - %s (%.1f°C / %.1f°F)",
		alert.SensorName, alert.Value, alert.ValueF)

	body, err := e.renderAlertTemplate(alert)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return e.sendEmail(subject, body)
}

func (e *EmailNotifier) renderAlertTemplate(alert *protocol.AlertNotification) (string, error) {
	tmpl := `
Temperature Threshold Crossed
=============================

Sensor: {{.SensorName}} ({{.SensorID}})
Reading: {{printf "%.2f" .Value}}°C ({{printf "%.2f" .ValueF}}°F)
Threshold: {{printf "%.2f" .Target}}°C ±{{printf "%.2f" .Margin}} ({{.Direction}})
Fired At: {{.FiredAt}}
Alert ID: {{.AlertID}}

Description:
Sensor {{.SensorName}} crossed its configured threshold of
{{printf "%.2f" .Target}}°C in the {{.Direction}} direction. The reading at
the crossing was {{printf "%.2f" .Value}}°C.

The threshold re-arms once the temperature leaves the tolerance band.

---
Temperature Monitor Notification System
`

	t, err := template.New("alert").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, alert); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (e *EmailNotifier) sendEmail(subject, body string) error {
	// Skip sending if SMTP is not configured
	if e.config.Username == "" || e.config.Password == "" {
		fmt.Printf("SMTP not configured, skipping email:\nSubject: %s\n%s\n", subject, body)
		return nil
	}

	// Construct message
	message := fmt.Sprintf("From: %s\r\n", e.config.From)
	message += fmt.Sprintf("To: %s\r\n", e.config.To)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	message += "\r\n"
	message += body

	// Setup authentication
	auth := smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)

	// Send email
	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	err := smtp.SendMail(addr, auth, e.config.From, []string{e.config.To}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Printf("Email sent successfully: %s\n", subject)
	return nil
}

// TestConnection tests the SMTP connection
func (e *EmailNotifier) TestConnection() error {
	if e.config.Username == "" {
		return fmt.Errorf("SMTP not configured")
	}

	// Try to connect
	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	fmt.Println("SMTP connection test successful")
	return nil
}
