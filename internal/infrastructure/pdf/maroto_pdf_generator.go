// Package pdf implementa la generación del resumen de expediente en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del usuario  │  Rol + Plantel + Avance      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FICHA: CURP / RFC / Puesto / Ingreso                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Paso | Estado del documento | Cumplido               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: contrato y reglamento con fecha de firma            │
//	│  FOOTER: veredicto de expediente completo + leyenda          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 0, Green: 128, Blue: 64}
	colorBad     = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var _ ports.ExpedientePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.ExpedientePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate genera el PDF resumen del expediente y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(estado dto.EstadoDocumentosResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Expediente", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(estado))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(fichaRow(estado.User))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	docsPorTipo := make(map[string]dto.DocumentoResponse, len(estado.Documentos))
	for _, d := range estado.Documentos {
		docsPorTipo[d.Type] = d
	}
	for _, r := range tableItemRows(estado.Checklist, docsPorTipo) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range firmasRows(estado.Firmas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(veredictoRow(estado))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del usuario (izq) y rol + avance (der).
func headerRow(estado dto.EstadoDocumentosResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(estado.User.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(estado.User.Email, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN DE EXPEDIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Rol: %s", estado.User.Role), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Avance: %d%% (%d/%d)",
				estado.Progreso.Percent, estado.Progreso.Done, estado.Progreso.Total),
				props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

// fichaRow: datos de la ficha técnica.
func fichaRow(u dto.UserResponse) core.Row {
	ingreso := "—"
	if u.HireDate != nil {
		ingreso = u.HireDate.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("FICHA TÉCNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("CURP: %s   |   RFC: %s",
				nonEmpty(u.CURP, "—"), nonEmpty(u.RFC, "—"),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Puesto: %s   |   Horario: %s   |   Ingreso: %s",
				nonEmpty(u.Puesto, "—"), nonEmpty(u.Horario, "—"), ingreso,
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de pasos del checklist.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Paso", 5, align.Left),
		h("Documento", 4, align.Left),
		h("Cumplido", 3, align.Center),
	)
}

// tableItemRows: una fila por paso del checklist.
func tableItemRows(items []dto.ChecklistItemResponse, docs map[string]dto.DocumentoResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		estadoDoc := "sin subir"
		if d, ok := docs[it.Type]; ok {
			estadoDoc = d.Status
		}
		cumplido := "No"
		colorCumplido := colorBad
		if it.Fulfilled {
			cumplido = "Sí"
			colorCumplido = colorOK
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				it.Type,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				estadoDoc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(3).Add(text.New(
				cumplido,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorCumplido},
			)),
		))
	}
	return result
}

// firmasRows: estado de las transacciones de firma electrónica.
func firmasRows(firmas []dto.FirmaResponse) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("FIRMAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(firmas) == 0 {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Sin transacciones de firma registradas.", props.Text{
				Size: 8, Color: colorGray, Top: 1, Left: 1,
			}),
		)))
		return rows
	}
	for _, f := range firmas {
		fecha := "—"
		if f.SignedAt != nil {
			fecha = f.SignedAt.Format("02/01/2006 15:04")
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s (%s)   firmado: %s", f.Type, f.Status, f.Provider, fecha),
				props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
		)))
	}
	return rows
}

// veredictoRow: veredicto de completitud del expediente.
func veredictoRow(estado dto.EstadoDocumentosResponse) core.Row {
	veredicto := "EXPEDIENTE INCOMPLETO"
	color := colorBad
	if estado.ExpedienteCompleto {
		veredicto = "EXPEDIENTE COMPLETO"
		color = colorOK
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(veredicto, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: color, Top: 2,
		}),
	))
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Generado el %s. Documento interno de Recursos Humanos; no sustituye los originales del expediente.",
				time.Now().Format("02/01/2006 15:04")),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
