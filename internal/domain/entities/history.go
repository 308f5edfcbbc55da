package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary is the flattened history row built from orders, vehicles and
// clients.
type OrderSummary struct {
	Folio       int64
	IntakeAt    time.Time
	ClientName  string
	VehicleInfo string
	Status      OrderStatus
	Total       decimal.Decimal
}

// LineDetail is one line of a stored order joined with the service catalog.
// PriceCharged is the frozen price-at-sale, not the current catalog price.
type LineDetail struct {
	ServiceKey   string
	ServiceName  string
	PriceCharged decimal.Decimal
}
