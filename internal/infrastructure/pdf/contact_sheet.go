// Package pdf genera la ficha imprimible de un contacto (datos, notas y actividades).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + empresa      │  QR con la ruta del contacto │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Email / Teléfono / Alta / Última modificación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ACTIVIDADES: Fecha | Tipo | Descripción                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS: fecha + contenido                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

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

	"github.com/jhoicas/contact-crm/internal/application/dto"
	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/internal/domain/entity"
)

var _ usecase.ContactSheetGenerator = (*ContactSheetGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const (
	dateLayout = "2006-01-02 15:04"
	// Texto largo recortado: la ficha es un resumen, el historial completo está en la app.
	maxEntryRunes = 600
	// Caracteres aproximados por línea en una columna de ancho completo a 8pt.
	runesPerLine = 110
)

// ContactSheetGenerator implementa usecase.ContactSheetGenerator usando Maroto v2.
type ContactSheetGenerator struct{}

func NewContactSheetGenerator() *ContactSheetGenerator { return &ContactSheetGenerator{} }

// GenerateContactSheet genera el PDF y devuelve sus bytes.
func (g *ContactSheetGenerator) GenerateContactSheet(_ context.Context, detail *dto.ContactDetail) ([]byte, error) {
	if detail == nil || detail.Contact == nil {
		return nil, errors.New("pdf: contacto requerido")
	}
	contact := detail.Contact

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Contact sheet: "+contact.FullName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(contact))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRow(contact))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(activityRows(detail.Activities)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(noteRows(detail.Notes)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(c *entity.Contact) core.Row {
	return row.New(30).Add(
		col.New(9).Add(
			text.New(c.FullName, props.Text{
				Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Top: 3,
			}),
			text.New(nonEmpty(c.DisplayCompany(), "No company"), props.Text{
				Size: 10, Top: 13, Color: colorGray,
			}),
		),
		col.New(3).Add(code.NewQr("/contacts/"+c.ID, props.Rect{Percent: 90, Center: true})),
	)
}

func detailsRow(c *entity.Contact) core.Row {
	field := func(label, value string, top float64) []core.Component {
		return []core.Component{
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: top, Color: colorPrimary}),
			text.New(value, props.Text{Size: 9, Top: top + 4}),
		}
	}
	return row.New(22).Add(
		col.New(6).Add(append(
			field("EMAIL", nonEmpty(c.Email, "-"), 1),
			field("PHONE", nonEmpty(c.Phone, "-"), 11)...,
		)...),
		col.New(6).Add(append(
			field("CREATED", c.CreatedAt.UTC().Format(dateLayout), 1),
			field("UPDATED", c.UpdatedAt.UTC().Format(dateLayout), 11)...,
		)...),
	)
}

func activityRows(activities []*entity.Activity) []core.Row {
	rows := []core.Row{sectionRow(fmt.Sprintf("ACTIVITIES (%d)", len(activities)))}
	if len(activities) == 0 {
		return append(rows, emptyRow("No activities recorded."))
	}
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
		}))
	}
	rows = append(rows, row.New(6).Add(h("Date", 3), h("Type", 2), h("Description", 7)))
	for _, a := range activities {
		desc := clip(a.Description)
		rows = append(rows, row.New(heightFor(desc, runesPerLine*7/12)).Add(
			col.New(3).Add(text.New(a.ActivityDate.UTC().Format(dateLayout), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(string(a.Type), props.Text{Size: 8, Top: 1})),
			col.New(7).Add(text.New(desc, props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

func noteRows(notes []*entity.Note) []core.Row {
	rows := []core.Row{sectionRow(fmt.Sprintf("NOTES (%d)", len(notes)))}
	if len(notes) == 0 {
		return append(rows, emptyRow("No notes yet."))
	}
	for _, n := range notes {
		content := clip(n.Content)
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(text.New(n.CreatedAt.UTC().Format(dateLayout), props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1,
			}))),
			row.New(heightFor(content, runesPerLine)).Add(col.New(12).Add(text.New(content, props.Text{
				Size: 8, Top: 0.5, Align: align.Left,
			}))),
		)
	}
	return rows
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
	})))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxEntryRunes {
		return s
	}
	return string([]rune(s)[:maxEntryRunes]) + "..."
}

// heightFor estima la altura de fila (mm) para que el texto ajustado no se superponga.
func heightFor(s string, perLine int) float64 {
	lines := 0
	for _, part := range strings.Split(s, "\n") {
		lines += utf8.RuneCountInString(part)/perLine + 1
	}
	return float64(lines)*4 + 2
}
