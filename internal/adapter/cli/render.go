package cli

import (
	"fmt"
	"strconv"

	"ordenes_servicio/internal/domain/entities"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	accent = lipgloss.Color("#D97706")
	dim    = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	moneyStyle  = cellStyle.Align(lipgloss.Right)
	emptyStyle  = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

func newTable(moneyCol int, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == moneyCol:
				return moneyStyle
			default:
				return cellStyle
			}
		})
}

func renderSummaries(rows []entities.OrderSummary) string {
	if len(rows) == 0 {
		return emptyStyle.Render("no orders yet")
	}

	t := newTable(5, "Folio", "Ingreso", "Cliente", "Vehículo", "Estado", "Total")
	for _, r := range rows {
		t.Row(
			strconv.FormatInt(r.Folio, 10),
			r.IntakeAt.Local().Format("2006-01-02 15:04"),
			r.ClientName,
			r.VehicleInfo,
			string(r.Status),
			r.Total.StringFixed(2),
		)
	}
	return t.Render()
}

func renderLineDetails(folio int64, rows []entities.LineDetail) string {
	if len(rows) == 0 {
		return emptyStyle.Render(fmt.Sprintf("order %d has no lines", folio))
	}

	t := newTable(2, "Clave", "Servicio", "Precio")
	for _, r := range rows {
		t.Row(r.ServiceKey, r.ServiceName, r.PriceCharged.StringFixed(2))
	}
	return t.Render()
}
