package email

import (
	"github.com/rs/zerolog/log"

	"github.com/talentohumano/expediente-api/internal/application/ports"
)

var _ ports.Mailer = (*ConsoleMailer)(nil)

// ConsoleMailer imprime los correos al log en lugar de enviarlos. Es el driver
// de desarrollo, donde los enlaces de recuperación se leen de la consola.
type ConsoleMailer struct{}

// NewConsoleMailer construye el mailer de consola.
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

// Send escribe el correo al log.
func (m *ConsoleMailer) Send(to, subject, htmlBody, textBody string) error {
	log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", textBody).
		Msg("correo (driver console)")
	return nil
}
