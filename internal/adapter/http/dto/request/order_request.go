package request

import (
	"strings"
	"time"

	"ordenes_servicio/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type OrderLineRequest struct {
	ServiceKey  string          `json:"serviceKey" example:"OIL01"`
	PriceAtSale decimal.Decimal `json:"priceAtSale" swaggertype:"number" example:"350.00"`
}

// CreateOrderRequest is the JSON body of POST /v1/orders.
//
// Amounts are decoded straight into decimals, so 0.1 stays 0.1. Business
// validation (positive vehicle, at least one line, non-negative amounts) is
// left to the use case.
type CreateOrderRequest struct {
	VehicleID                  int64              `json:"vehicleId" example:"7"`
	TotalCost                  decimal.Decimal    `json:"totalCost" swaggertype:"number" example:"450.00"`
	EstimatedDeliveryTimestamp *time.Time         `json:"estimatedDeliveryTimestamp,omitempty" example:"2026-10-21T17:30:00Z"`
	Lines                      []OrderLineRequest `json:"lines"`
}

func (r CreateOrderRequest) ResolveLines() []entities.OrderLine {
	lines := make([]entities.OrderLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, entities.OrderLine{
			ServiceKey:  strings.TrimSpace(l.ServiceKey),
			PriceAtSale: l.PriceAtSale,
		})
	}
	return lines
}

func (r CreateOrderRequest) ResolveEstimatedDelivery() *time.Time {
	if r.EstimatedDeliveryTimestamp == nil || r.EstimatedDeliveryTimestamp.IsZero() {
		return nil
	}
	t := r.EstimatedDeliveryTimestamp.UTC()
	return &t
}

type FolioURI struct {
	Folio int64 `uri:"folio"`
}
