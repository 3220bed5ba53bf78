package ports

import (
	"context"
	"io"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

// Mailer envía correos transaccionales (recuperación de contraseña, avisos).
type Mailer interface {
	Send(to, subject, htmlBody, textBody string) error
}

// FileStore guarda y recupera los archivos de los documentos. Las llaves son
// rutas relativas del tipo "<userID>/<tipo>/<uuid>.pdf".
type FileStore interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// GoogleVerifier valida una credencial de Google Identity y devuelve el email
// y nombre verificados.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (email, name string, err error)
}

// PsicometricosReader consulta en vivo los resultados de pruebas en los dos
// sistemas heredados, cruzando por CURP.
type PsicometricosReader interface {
	ResultadosPorCURP(ctx context.Context, curp string) ([]dto.ResultadoPsicometrico, error)
}

// ExpedientePDFGenerator produce el PDF resumen del expediente de un usuario.
type ExpedientePDFGenerator interface {
	Generate(estado dto.EstadoDocumentosResponse) ([]byte, error)
}

// TxRunner ejecuta callbacks con repositorios atados a una transacción, para
// las mutaciones multi-paso que deben ser atómicas.
type TxRunner interface {
	// RunReset cubre el restablecimiento de contraseña: actualizar hash y
	// marcar el token como usado, ambos o ninguno.
	RunReset(ctx context.Context, fn func(users repository.UserRepository, tokens repository.ResetTokenRepository) error) error
	// RunBorradoUsuario cubre el borrado duro de un usuario con la cascada
	// manual de sus dependientes.
	RunBorradoUsuario(ctx context.Context, fn func(
		users repository.UserRepository,
		checklist repository.ChecklistRepository,
		docs repository.DocumentRepository,
		firmas repository.SignatureRepository,
		tokens repository.ResetTokenRepository,
		planteles repository.PlantelRepository,
	) error) error
}
