package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a service order.
//
// Only the initial state is assigned by this service; no transitions exist yet.
type OrderStatus string

const (
	OrderStatusAbierta OrderStatus = "Abierta"
)

// Order is a service order header plus its line items.
//
// Storage model (relational):
//   - ordenes_servicio: one row per order, folio_orden is the identity column
//   - orden_detalles_servicios: one row per line, keyed by (folio_orden, renglon)
//
// Folio is assigned by the store on insert and is never reused. TotalCost is
// stored as supplied by the caller; it is not recomputed from the lines.
type Order struct {
	Folio               int64
	VehicleID           int64
	IntakeAt            time.Time
	EstimatedDeliveryAt *time.Time
	Status              OrderStatus
	TotalCost           decimal.Decimal
	Lines               []OrderLine
}

// OrderLine is one labor service within an order. PriceAtSale is a snapshot
// of the catalog price at creation time and never changes afterwards.
type OrderLine struct {
	ServiceKey  string
	PriceAtSale decimal.Decimal
}

// LinesTotal sums the price snapshots of all lines.
func (o Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.PriceAtSale)
	}
	return total
}
