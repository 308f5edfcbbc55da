package usecase

import (
	"context"
	"errors"
	"log"
	"ordenes_servicio/internal/domain/entities"
	"ordenes_servicio/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidVehicleID  = errors.New("invalid vehicle id")
	ErrEmptyOrderLines   = errors.New("order must have at least one line")
	ErrInvalidServiceKey = errors.New("invalid service key")
	ErrInvalidLinePrice  = errors.New("invalid line price")
	ErrInvalidTotalCost  = errors.New("invalid total cost")
	// ErrInvalidAmountPrecision is returned for amounts with more than two
	// fractional digits; the store keeps money as NUMERIC(10,2).
	ErrInvalidAmountPrecision = errors.New("amount has more than two decimals")
	ErrOrderNotPersisted      = errors.New("order not persisted")
)

// CreateOrderCommand is the input of the order writer.
//
// TotalCost is trusted as supplied: it is stored even when it differs from
// the sum of the line prices.
type CreateOrderCommand struct {
	VehicleID           int64
	TotalCost           decimal.Decimal
	EstimatedDeliveryAt *time.Time
	Lines               []entities.OrderLine
}

// IOrderUseCase exposes service-order operations:
//   - "Guardar orden" => CreateOrder()
//   - "Siguiente folio" (advisory, not reserved) => NextFolio()
//   - "Historial de órdenes" => ListOrderSummaries()
//   - "Detalles por folio" => ListLineDetails()

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (int64, error)
	NextFolio(ctx context.Context) (int64, error)
	ListOrderSummaries(ctx context.Context) ([]entities.OrderSummary, error)
	ListLineDetails(ctx context.Context, folio int64) ([]entities.LineDetail, error)
}

type OrderUseCase struct {
	repo interfaces.IOrderRepository
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	log.Printf("[order][usecase] create start vehicle_id=%d lines=%d total=%s", cmd.VehicleID, len(cmd.Lines), cmd.TotalCost)

	order, err := buildOrder(cmd)
	if err != nil {
		log.Printf("[order][usecase] invalid order vehicle_id=%d err=%v", cmd.VehicleID, err)
		return 0, err
	}
	if !order.TotalCost.Equal(order.LinesTotal()) {
		log.Printf("[order][usecase] total differs from lines vehicle_id=%d total=%s lines_total=%s", order.VehicleID, order.TotalCost, order.LinesTotal())
	}

	folio, err := u.repo.Create(ctx, order)
	if err != nil {
		log.Printf("[order][usecase] create failed vehicle_id=%d err=%v", order.VehicleID, err)
		return 0, err
	}
	if folio <= 0 {
		log.Printf("[order][usecase] store returned no folio vehicle_id=%d", order.VehicleID)
		return 0, ErrOrderNotPersisted
	}

	log.Printf("[order][usecase] create success folio=%d vehicle_id=%d", folio, order.VehicleID)
	return folio, nil
}

func (u *OrderUseCase) NextFolio(ctx context.Context) (int64, error) {
	return u.repo.NextFolio(ctx)
}

func (u *OrderUseCase) ListOrderSummaries(ctx context.Context) ([]entities.OrderSummary, error) {
	summaries, err := u.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []entities.OrderSummary{}
	}
	return summaries, nil
}

// ListLineDetails returns an empty list for a folio that was never issued,
// zero and negative folios included.
func (u *OrderUseCase) ListLineDetails(ctx context.Context, folio int64) ([]entities.LineDetail, error) {
	details, err := u.repo.ListLineDetails(ctx, folio)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = []entities.LineDetail{}
	}
	return details, nil
}

func buildOrder(cmd CreateOrderCommand) (entities.Order, error) {
	if cmd.VehicleID <= 0 {
		return entities.Order{}, ErrInvalidVehicleID
	}
	if cmd.TotalCost.IsNegative() {
		return entities.Order{}, ErrInvalidTotalCost
	}
	if !hasCents(cmd.TotalCost) {
		return entities.Order{}, ErrInvalidAmountPrecision
	}
	if len(cmd.Lines) == 0 {
		return entities.Order{}, ErrEmptyOrderLines
	}

	lines := make([]entities.OrderLine, 0, len(cmd.Lines))
	for _, l := range cmd.Lines {
		key := strings.TrimSpace(l.ServiceKey)
		if key == "" {
			return entities.Order{}, ErrInvalidServiceKey
		}
		if l.PriceAtSale.IsNegative() {
			return entities.Order{}, ErrInvalidLinePrice
		}
		if !hasCents(l.PriceAtSale) {
			return entities.Order{}, ErrInvalidAmountPrecision
		}
		lines = append(lines, entities.OrderLine{ServiceKey: key, PriceAtSale: l.PriceAtSale})
	}

	return entities.Order{
		VehicleID:           cmd.VehicleID,
		EstimatedDeliveryAt: cmd.EstimatedDeliveryAt,
		Status:              entities.OrderStatusAbierta,
		TotalCost:           cmd.TotalCost,
		Lines:               lines,
	}, nil
}

// hasCents reports whether d fits in two fractional digits. Trailing zeros
// ("350.0000") are fine.
func hasCents(d decimal.Decimal) bool {
	return d.Exponent() >= -2 || d.Equal(d.Round(2))
}
