// Package pdf implementa la generación del comprobante imprimible de un
// registro de movimiento (entrada, salida o traslado).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del almacén  │  N° Registro + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TIPO DE MOVIMIENTO + ESTADO                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cargo | Variante | Destino | Unidad | Cantidad      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE UNIDADES MOVIDAS                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del registro + leyenda                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/ledger"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var recordTypeLabels = map[string]string{
	entity.RecordTypeInbound:  "ENTRADA DE INVENTARIO",
	entity.RecordTypeOutbound: "SALIDA DE INVENTARIO",
	entity.RecordTypeTransfer: "TRASLADO ENTRE VARIANTES",
}

var recordStatusLabels = map[string]string{
	entity.RecordStatusDraft:     "BORRADOR",
	entity.RecordStatusSubmitted: "ENVIADO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ledger.RecordPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ledger.RecordPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	warehouseName string
}

// NewMarotoPDFGenerator construye el generador con el nombre del almacén que
// encabeza cada comprobante.
func NewMarotoPDFGenerator(warehouseName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{warehouseName: warehouseName}
}

// GenerateRecordPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateRecordPDF(_ context.Context, record *entity.Record) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de movimiento", true).
		WithAuthor(g.warehouseName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(typeRow(record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(record) {
		m.AddRows(r)
	}

	// Total
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(record))

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(record) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del almacén (izq) y N° registro + fecha (der).
func (g *MarotoPDFGenerator) headerRow(record *entity.Record) core.Row {
	fecha := record.UpdatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.warehouseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de movimiento de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REGISTRO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(record.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// typeRow: tipo de movimiento + estado.
func typeRow(record *entity.Record) core.Row {
	tipo := recordTypeLabels[record.Type]
	if tipo == "" {
		tipo = record.Type
	}
	estado := recordStatusLabels[record.Status]
	if estado == "" {
		estado = record.Status
	}

	return row.New(10).Add(
		col.New(8).Add(
			text.New(tipo, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Estado: "+estado, props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cargo", 4, align.Left),
		h("Variante", 3, align.Left),
		h("Destino", 2, align.Left),
		h("Unidad", 1, align.Center),
		h("Cantidad", 2, align.Right),
	)
}

// tableDetailRows: una fila por variante, con el nombre del cargo solo en la
// primera fila de su grupo.
func tableDetailRows(record *entity.Record) []core.Row {
	var result []core.Row
	for _, d := range record.Details {
		cargoName := d.CargoName
		for _, m := range d.Models {
			result = append(result, row.New(7).Add(
				col.New(4).Add(text.New(
					cargoName,
					props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
				)),
				col.New(3).Add(text.New(
					m.ModelName,
					props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
				)),
				col.New(2).Add(text.New(
					nonEmpty(m.ToModelName, "—"),
					props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
				)),
				col.New(1).Add(text.New(
					d.Unit,
					props.Text{Size: 8, Align: align.Center, Top: 1},
				)),
				col.New(2).Add(text.New(
					strconv.FormatInt(m.Quantity, 10),
					props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
				)),
			))
			cargoName = ""
		}
	}
	return result
}

// totalRow: total de unidades movidas, alineado a la derecha.
func totalRow(record *entity.Record) core.Row {
	total := ledger.RecordQuantityTotal(record)
	return row.New(10).Add(
		col.New(6),
		col.New(4).Add(text.New("TOTAL DE UNIDADES:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(strconv.FormatInt(total, 10), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// footerRows: QR con el ID completo del registro + leyenda.
func footerRows(record *entity.Record) []core.Row {
	return []core.Row{
		row.New(35).Add(
			col.New(4).Add(code.NewQr(record.ID, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para consultar\neste registro en el sistema.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("ID: "+record.ID, props.Text{
					Size: 7, Top: 16, Left: 3, Color: colorGray,
				}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Los registros enviados son historial inmutable: este comprobante "+
					"refleja las cantidades y nombres al momento del movimiento.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID recorta un UUID a su primer bloque para el encabezado.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
