package interfaces

import (
	"context"
	"ordenes_servicio/internal/domain/entities"
)

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/mock_order_repository_interface.go -package=mock_interfaces

// IOrderRepository abstracts persistence of service orders.
//
// The store must be able to:
//   - create an order header and all of its lines atomically (Create)
//   - estimate the next folio from the identity high-water mark (NextFolio)
//   - list order summaries and the frozen lines of one order

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (int64, error)
	NextFolio(ctx context.Context) (int64, error)
	ListSummaries(ctx context.Context) ([]entities.OrderSummary, error)
	ListLineDetails(ctx context.Context, folio int64) ([]entities.LineDetail, error)
}
