// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/config"
	"github.com/gamevault/gamestore-backend/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	tmpl := s.getEmailTemplate("welcome")

	data := map[string]interface{}{
		"Username": user.Username,
		"StoreURL": s.config.Frontend.BaseURL,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

// SendOrderReceipt mails the order summary after a successful payment.
func (s *NotificationService) SendOrderReceipt(user *models.User, order *models.Order) error {
	tmpl := s.getEmailTemplate("order_receipt")

	data := map[string]interface{}{
		"Username":      user.Username,
		"InvoiceNumber": order.InvoiceNumber,
		"Total":         fmt.Sprintf("%.2f", order.Total()),
		"Items":         order.Details,
		"OrderURL":      fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

// SendDownloadLink mails a short-lived download link for a purchased game.
func (s *NotificationService) SendDownloadLink(user *models.User, gameName, url string) error {
	tmpl := s.getEmailTemplate("download_link")

	data := map[string]interface{}{
		"Username":    user.Username,
		"GameName":    gameName,
		"DownloadURL": url,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendBanNotification(user *models.User, reason string) error {
	tmpl := s.getEmailTemplate("banned")

	data := map[string]interface{}{
		"Username": user.Username,
		"Reason":   reason,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" || s.config.Email.SMTPUsername == "" {
		// Email not configured, just log
		fmt.Printf("Email would be sent to %s: %s\n", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"welcome": {
			Subject: "Welcome to GameVault",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.Username}}!</h2>
	<p>Thank you for joining GameVault. Browse the catalog and start building your library:</p>
	<a href="{{.StoreURL}}">Open the store</a>
	<p>Best regards,<br>GameVault Team</p>
</body>
</html>`,
		},
		"order_receipt": {
			Subject: "Your GameVault order",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.Username}}!</h2>
	<p>Invoice {{.InvoiceNumber}}, total ${{.Total}}.</p>
	<ul>
	{{range .Items}}<li>{{.GameKey}} x{{.Quantity}}</li>{{end}}
	</ul>
	<a href="{{.OrderURL}}">View your order</a>
	<p>Best regards,<br>GameVault Team</p>
</body>
</html>`,
		},
		"download_link": {
			Subject: "Your download is ready",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Username}},</h2>
	<p>Your copy of {{.GameName}} is ready:</p>
	<a href="{{.DownloadURL}}">Download</a>
	<p>The link expires in 15 minutes.</p>
	<p>Best regards,<br>GameVault Team</p>
</body>
</html>`,
		},
		"banned": {
			Subject: "Your account has been suspended",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Username}},</h2>
	<p>Your account has been suspended. Reason: {{.Reason}}</p>
	<p>Best regards,<br>GameVault Team</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
