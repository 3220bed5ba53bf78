// Package legacy lee resultados de pruebas psicométricas de los dos sistemas
// heredados. Acceso de solo lectura, consultado en vivo por CURP.
package legacy

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/ports"
	"github.com/talentohumano/expediente-api/pkg/config"
)

var _ ports.PsicometricosReader = (*Reader)(nil)

// Reader consulta los dos sistemas heredados. Cualquiera de las dos
// conexiones puede ser nula si su DSN no está configurado; en ese caso esa
// fuente simplemente no aporta resultados.
type Reader struct {
	psicometricos *sqlx.DB
	evaluaciones  *sqlx.DB
}

// NewReader abre las conexiones configuradas. Un DSN vacío deja la fuente
// deshabilitada sin que sea un error.
func NewReader(cfg config.LegacyConfig) (*Reader, error) {
	r := &Reader{}
	var err error
	if cfg.PsicometricosDSN != "" {
		r.psicometricos, err = abrir(cfg.PsicometricosDSN)
		if err != nil {
			return nil, fmt.Errorf("conectar psicometricos: %w", err)
		}
	}
	if cfg.EvaluacionesDSN != "" {
		r.evaluaciones, err = abrir(cfg.EvaluacionesDSN)
		if err != nil {
			return nil, fmt.Errorf("conectar evaluaciones: %w", err)
		}
	}
	return r, nil
}

func abrir(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// Close cierra las conexiones abiertas.
func (r *Reader) Close() {
	if r.psicometricos != nil {
		_ = r.psicometricos.Close()
	}
	if r.evaluaciones != nil {
		_ = r.evaluaciones.Close()
	}
}

type filaResultado struct {
	Prueba   string    `db:"prueba"`
	URL      string    `db:"url"`
	Aplicada time.Time `db:"aplicada"`
}

// ResultadosPorCURP junta los resultados de ambas fuentes. Si una fuente
// falla se registra y se devuelven los resultados de la otra; el expediente
// no debe caerse porque un sistema heredado esté fuera de línea.
func (r *Reader) ResultadosPorCURP(ctx context.Context, curp string) ([]dto.ResultadoPsicometrico, error) {
	out := []dto.ResultadoPsicometrico{}

	if r.psicometricos != nil {
		query := `
			SELECT p.nombre AS prueba, a.url_resultado AS url, a.fecha_aplicacion AS aplicada
			FROM aplicaciones a
			JOIN pruebas p ON p.id = a.prueba_id
			WHERE a.curp = $1
			ORDER BY a.fecha_aplicacion DESC`
		filas, err := consultar(ctx, r.psicometricos, query, curp)
		if err != nil {
			log.Warn().Err(err).Msg("consulta a psicometricos falló")
		}
		for _, f := range filas {
			out = append(out, dto.ResultadoPsicometrico{
				Fuente: "psicometricos", Prueba: f.Prueba, URL: f.URL, Aplicada: f.Aplicada,
			})
		}
	}

	if r.evaluaciones != nil {
		query := `
			SELECT e.tipo AS prueba, e.reporte_url AS url, e.aplicada_en AS aplicada
			FROM evaluaciones e
			WHERE e.curp = $1
			ORDER BY e.aplicada_en DESC`
		filas, err := consultar(ctx, r.evaluaciones, query, curp)
		if err != nil {
			log.Warn().Err(err).Msg("consulta a evaluaciones falló")
		}
		for _, f := range filas {
			out = append(out, dto.ResultadoPsicometrico{
				Fuente: "evaluaciones", Prueba: f.Prueba, URL: f.URL, Aplicada: f.Aplicada,
			})
		}
	}

	return out, nil
}

func consultar(ctx context.Context, db *sqlx.DB, query, curp string) ([]filaResultado, error) {
	var filas []filaResultado
	if err := db.SelectContext(ctx, &filas, query, curp); err != nil {
		return nil, err
	}
	return filas, nil
}
