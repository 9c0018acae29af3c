package mailer

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pcstorehq/pcstore-api/models"
	"github.com/wneessen/go-mail"
)

// SendReceipt emails the proof of payment after a confirmed purchase. When
// SMTP is not configured the send is skipped, not failed, so environments
// without a mail relay still confirm payments.
func SendReceipt(to, name string, purchase models.Purchase, invoiceID string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST not set, skipping receipt email")
		return nil
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@pcstore.dev"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Your order confirmation — invoice %s", invoiceID))
	msg.SetBodyString(mail.TypeTextHTML, receiptHTML(name, purchase, invoiceID))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending receipt email to", to)
	return client.DialAndSend(msg)
}

func receiptHTML(name string, purchase models.Purchase, invoiceID string) string {
	if name == "" {
		name = "there"
	}

	var rows strings.Builder
	for _, item := range purchase.Items {
		rows.WriteString(fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">$%.2f</td>
			</tr>`, item.Product.Name, item.Quantity, item.Product.Price*float64(item.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thanks for your purchase!</h2>
		<p>Hi %s,</p>
		<p>Your payment was confirmed. Invoice reference: <strong>%s</strong>.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Product</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Quantity</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Subtotal</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p style="font-size: 18px;"><strong>Total: $%.2f</strong></p>
		<p>Your order will ship to the address you selected at checkout.</p>
	</div>
</body>
</html>`, name, invoiceID, rows.String(), purchase.Total)
}
