package response

import (
	"time"

	"ordenes_servicio/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// CreateOrderResponse is the envelope returned by POST /v1/orders. Folio is
// only present on success, Message only on failure.
type CreateOrderResponse struct {
	Success bool   `json:"success"`
	Folio   int64  `json:"folio,omitempty"`
	Message string `json:"message,omitempty"`
}

func OrderCreated(folio int64) CreateOrderResponse {
	return CreateOrderResponse{Success: true, Folio: folio}
}

func OrderFailed(message string) CreateOrderResponse {
	return CreateOrderResponse{Success: false, Message: message}
}

type NextFolioResponse struct {
	Folio int64 `json:"folio"`
}

type OrderSummaryResponse struct {
	Folio           int64     `json:"folio"`
	IntakeTimestamp time.Time `json:"intakeTimestamp"`
	ClientName      string    `json:"clientName"`
	VehicleInfo     string    `json:"vehicleInfo"`
	Status          string    `json:"status"`
	Total           float64   `json:"total"`
}

type LineDetailResponse struct {
	ServiceKey   string  `json:"serviceKey"`
	ServiceName  string  `json:"serviceName"`
	PriceCharged float64 `json:"priceCharged"`
}

func FromOrderSummary(s entities.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		Folio:           s.Folio,
		IntakeTimestamp: s.IntakeAt,
		ClientName:      s.ClientName,
		VehicleInfo:     s.VehicleInfo,
		Status:          string(s.Status),
		Total:           money(s.Total),
	}
}

func FromOrderSummaries(in []entities.OrderSummary) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, FromOrderSummary(s))
	}
	return out
}

func FromLineDetails(in []entities.LineDetail) []LineDetailResponse {
	out := make([]LineDetailResponse, 0, len(in))
	for _, d := range in {
		out = append(out, LineDetailResponse{
			ServiceKey:   d.ServiceKey,
			ServiceName:  d.ServiceName,
			PriceCharged: money(d.PriceCharged),
		})
	}
	return out
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
