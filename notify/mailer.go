package notify

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"kioskmart/config"
	"kioskmart/models"
)

// Mailer sends HTML mail over SMTP. An unconfigured mailer (no host) is a
// valid no-op sender so orders succeed without any mail infrastructure.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (m *Mailer) Configured() bool {
	return m.host != ""
}

func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}

// EmailNotifier implements orders.Notifier. Recipient addresses for the
// admin notification are read fresh from the notification_email setting on
// every dispatch so changes apply without a restart.
type EmailNotifier struct {
	db     *gorm.DB
	mailer *Mailer
}

func NewEmailNotifier(db *gorm.DB, mailer *Mailer) *EmailNotifier {
	return &EmailNotifier{db: db, mailer: mailer}
}

func (n *EmailNotifier) OrderCreated(order *models.Order) {
	Dispatch("order admin email", func() error {
		return n.sendAdminEmail(order)
	})
	if order.Email != nil && *order.Email != "" {
		customer := *order.Email
		Dispatch("order confirmation email", func() error {
			return n.sendCustomerEmail(order, customer)
		})
	}
}

func (n *EmailNotifier) sendAdminEmail(order *models.Order) error {
	if !n.mailer.Configured() {
		slog.Info("smtp not configured, skipping admin order email",
			"orderNumber", order.OrderNumber)
		return nil
	}
	recipients := n.adminRecipients()
	if len(recipients) == 0 {
		slog.Info("no notification recipients configured, skipping admin order email",
			"orderNumber", order.OrderNumber)
		return nil
	}
	subject := fmt.Sprintf("New order %s", order.OrderNumber)
	return n.mailer.Send(recipients, subject, orderHTML(order, "A new order has been placed."))
}

func (n *EmailNotifier) sendCustomerEmail(order *models.Order, to string) error {
	if !n.mailer.Configured() {
		slog.Info("smtp not configured, skipping confirmation email",
			"orderNumber", order.OrderNumber)
		return nil
	}
	subject := fmt.Sprintf("Your order %s", order.OrderNumber)
	return n.mailer.Send([]string{to}, subject, orderHTML(order, "Thank you for your order!"))
}

func (n *EmailNotifier) adminRecipients() []string {
	var setting models.Setting
	if err := n.db.Where("key = ?", models.SettingNotificationEmail).
		First(&setting).Error; err != nil {
		return nil
	}
	var recipients []string
	for _, part := range strings.Split(setting.Value, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

// orderHTML renders the email body from the order's denormalized line items,
// never from live product rows.
func orderHTML(order *models.Order, intro string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Order %s</h2>", html.EscapeString(order.OrderNumber))
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(intro))
	fmt.Fprintf(&b, "<p><strong>%s %s</strong><br>%s<br>%s</p>",
		html.EscapeString(order.FirstName), html.EscapeString(order.LastName),
		html.EscapeString(order.Phone), html.EscapeString(order.Address))

	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Code</th><th>Product</th><th>Size</th><th>Color</th><th>Price</th><th>Qty</th></tr>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>",
			html.EscapeString(item.ProductCode), html.EscapeString(item.Title),
			html.EscapeString(item.SizeRange), html.EscapeString(item.Color),
			html.EscapeString(item.Price), item.Quantity)
	}
	b.WriteString("</table>")
	return b.String()
}
