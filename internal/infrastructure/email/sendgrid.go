// Package email implementa el puerto Mailer sobre SendGrid o la consola.
package email

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/talentohumano/expediente-api/internal/application/ports"
	"github.com/talentohumano/expediente-api/pkg/config"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

var _ ports.Mailer = (*SendgridMailer)(nil)

// SendgridMailer envía correos transaccionales vía la API v3 de SendGrid.
type SendgridMailer struct {
	key  string
	from *sgmail.Email
}

// NewSendgridMailer construye el mailer con la configuración de correo.
func NewSendgridMailer(cfg config.MailConfig) *SendgridMailer {
	return &SendgridMailer{
		key:  cfg.APIKey,
		from: sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

// Send envía un correo con cuerpo HTML y alternativa de texto plano.
func (m *SendgridMailer) Send(to, subject, htmlBody, textBody string) error {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", to))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(
		sgmail.NewContent("text/plain", textBody),
		sgmail.NewContent("text/html", htmlBody),
	)

	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("enviar correo: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
