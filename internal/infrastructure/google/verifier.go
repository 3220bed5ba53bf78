// Package google valida credenciales de Google Identity Services.
package google

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/talentohumano/expediente-api/internal/application/ports"
	"github.com/talentohumano/expediente-api/internal/domain"
)

var _ ports.GoogleVerifier = (*Verifier)(nil)

// Verifier valida el ID token que entrega el botón de Google en el frontend
// y extrae el email verificado.
type Verifier struct {
	clientID string
}

// NewVerifier construye el verificador para el client ID de la app.
func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

// Verify valida la credencial contra los certificados de Google y devuelve
// email y nombre. Solo acepta emails verificados por Google.
func (v *Verifier) Verify(ctx context.Context, credential string) (string, string, error) {
	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		return "", "", fmt.Errorf("%w: credencial de Google inválida", domain.ErrUnauthorized)
	}
	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return "", "", fmt.Errorf("%w: el email de Google no está verificado", domain.ErrUnauthorized)
	}
	name, _ := payload.Claims["name"].(string)
	return email, name, nil
}
