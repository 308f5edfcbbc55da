package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ordenes_servicio/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDynamoOrderRepo(t *testing.T) (*OrderDynamoRepository, *fakeDynamo, DynamoTables) {
	t.Helper()
	tables := NewDynamoTables("test_")
	fake := newFakeDynamo(tables)
	seedDynamoCatalog(t, fake, tables)
	repo := NewOrderDynamoRepository(fake, tables)
	repo.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return repo, fake, tables
}

func TestNewDynamoTables(t *testing.T) {
	t.Setenv("ORDENES_TABLE", "orders")

	tables := NewDynamoTables("dev_")
	assert.Equal(t, "dev_orders", tables.Ordenes)
	assert.Equal(t, "dev_orden_detalles_servicios", tables.OrdenDetalles)
	assert.Equal(t, "dev_contadores", tables.Contadores)
}

func TestOrderDynamoRepository_CreateAndRead(t *testing.T) {
	repo, fake, tables := newDynamoOrderRepo(t)
	ctx := context.Background()

	next, err := repo.NextFolio(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	folio, err := repo.Create(ctx, oilAndTiresOrder())
	require.NoError(t, err)
	assert.Equal(t, int64(1), folio)
	assert.Equal(t, 1, fake.count(tables.Ordenes))
	assert.Equal(t, 2, fake.count(tables.OrdenDetalles))

	details, err := repo.ListLineDetails(ctx, folio)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "OIL01", details[0].ServiceKey)
	assert.Equal(t, "Cambio de aceite", details[0].ServiceName)
	assert.Equal(t, "350.00", details[0].PriceCharged.StringFixed(2))
	assert.Equal(t, "TIRE1", details[1].ServiceKey)

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, entities.OrderSummary{
		Folio:       folio,
		IntakeAt:    time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		ClientName:  "Ana Gómez López",
		VehicleInfo: "Nissan Versa - ABC-123",
		Status:      entities.OrderStatusAbierta,
		Total:       summaries[0].Total,
	}, summaries[0])
	assert.Equal(t, "450.00", summaries[0].Total.StringFixed(2))

	next, err = repo.NextFolio(ctx)
	require.NoError(t, err)
	assert.Equal(t, folio+1, next)
}

func TestOrderDynamoRepository_StoresGivenStatus(t *testing.T) {
	repo, _, _ := newDynamoOrderRepo(t)
	ctx := context.Background()

	o := oilAndTiresOrder()
	o.Status = entities.OrderStatus("En revisión")
	_, err := repo.Create(ctx, o)
	require.NoError(t, err)

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, entities.OrderStatus("En revisión"), summaries[0].Status)
}

func TestOrderDynamoRepository_CreateRejectsMissingReferences(t *testing.T) {
	cases := []struct {
		name  string
		order func() entities.Order
	}{
		{
			name: "unknown service",
			order: func() entities.Order {
				o := oilAndTiresOrder()
				o.Lines = append(o.Lines, entities.OrderLine{ServiceKey: "NOPE9", PriceAtSale: dec("1")})
				return o
			},
		},
		{
			name: "unknown vehicle",
			order: func() entities.Order {
				o := oilAndTiresOrder()
				o.VehicleID = 404
				return o
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, fake, tables := newDynamoOrderRepo(t)
			ctx := context.Background()

			folio, err := repo.Create(ctx, tc.order())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReference), "got %v", err)
			assert.Equal(t, int64(0), folio)
			assert.Equal(t, 0, fake.count(tables.Ordenes))
			assert.Equal(t, 0, fake.count(tables.OrdenDetalles))

			// The burned folio is skipped, never reused.
			folio, err = repo.Create(ctx, oilAndTiresOrder())
			require.NoError(t, err)
			assert.Equal(t, int64(2), folio)
		})
	}
}

func TestOrderDynamoRepository_CreateTooManyLines(t *testing.T) {
	repo, fake, _ := newDynamoOrderRepo(t)
	ctx := context.Background()

	o := oilAndTiresOrder()
	o.Lines = nil
	for i := 0; i < maxTransactItems; i++ {
		o.Lines = append(o.Lines, entities.OrderLine{ServiceKey: "OIL01", PriceAtSale: dec("1")})
	}

	_, err := repo.Create(ctx, o)
	require.ErrorIs(t, err, ErrTooManyLines)
	assert.Equal(t, 0, fake.transactCalls)

	next, err := repo.NextFolio(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestOrderDynamoRepository_ListSummaries(t *testing.T) {
	repo, fake, tables := newDynamoOrderRepo(t)
	fake.pageSize = 2
	ctx := context.Background()

	var folios []int64
	for _, vehicle := range []int64{7, 8, 9} {
		o := oilAndTiresOrder()
		o.VehicleID = vehicle
		folio, err := repo.Create(ctx, o)
		require.NoError(t, err)
		folios = append(folios, folio)
	}

	// An order pointing at a vehicle that no longer exists.
	fake.put(t, tables.Ordenes, ordenItem{FolioOrden: 99, IDVehiculo: 500, FechaIngreso: timeToString(time.Now()), Estado: "Abierta", CostoTotal: "1.00"})

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, folios[2], summaries[0].Folio)
	assert.Equal(t, folios[1], summaries[1].Folio)
	assert.Equal(t, folios[0], summaries[2].Folio)
	assert.Equal(t, "Luis Pérez", summaries[1].ClientName)
	assert.Equal(t, "Chevrolet Aveo - JKL-456", summaries[0].VehicleInfo)
}

func TestOrderDynamoRepository_ListLineDetails(t *testing.T) {
	repo, fake, _ := newDynamoOrderRepo(t)
	ctx := context.Background()

	t.Run("unknown folio", func(t *testing.T) {
		details, err := repo.ListLineDetails(ctx, 42)
		require.NoError(t, err)
		assert.NotNil(t, details)
		assert.Empty(t, details)
	})

	t.Run("keeps line order and retries unprocessed keys", func(t *testing.T) {
		o := oilAndTiresOrder()
		o.Lines = nil
		keys := []string{"BRK02", "OIL01", "TIRE1", "OIL01"}
		for i, k := range keys {
			o.Lines = append(o.Lines, entities.OrderLine{ServiceKey: k, PriceAtSale: dec(fmt.Sprintf("%d.50", i+1))})
		}
		folio, err := repo.Create(ctx, o)
		require.NoError(t, err)

		fake.unprocessOnce = true
		calls := fake.batchCalls
		details, err := repo.ListLineDetails(ctx, folio)
		require.NoError(t, err)
		assert.Equal(t, calls+2, fake.batchCalls)

		require.Len(t, details, len(keys))
		for i, k := range keys {
			assert.Equal(t, k, details[i].ServiceKey)
			assert.Equal(t, fmt.Sprintf("%d.50", i+1), details[i].PriceCharged.StringFixed(2))
		}
	})
}
