// Package mail envía correos transaccionales (confirmaciones de pedido) vía SMTP.
package mail

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backend/internal/application/order"
	"github.com/tu-usuario/pos-backend/pkg/config"
	gomail "gopkg.in/gomail.v2"
)

var _ order.Mailer = (*GomailSender)(nil)

// GomailSender implementa order.Mailer sobre SMTP usando gomail.
type GomailSender struct {
	cfg config.SMTPConfig
}

// NewGomailSender construye el remitente SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// SendOrderConfirmation envía la confirmación de compra al cliente.
// Si no hay SMTP configurado, no hace nada.
func (s *GomailSender) SendOrderConfirmation(to, customerName, orderNumber string, total decimal.Decimal) error {
	if !s.cfg.Enabled() || to == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Confirmación de pedido %s", orderNumber))
	m.SetBody("text/html", fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Gracias por tu compra. Tu pedido <strong>%s</strong> se completó
		por un total de <strong>$%s</strong>.</p>
		<p>Conserva este correo como comprobante.</p>`,
		customerName, orderNumber, total.StringFixed(2),
	))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar confirmación: %w", err)
	}
	return nil
}
