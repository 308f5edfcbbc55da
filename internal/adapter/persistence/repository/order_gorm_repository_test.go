package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordenes_servicio/internal/domain/entities"
	"ordenes_servicio/internal/infrastructure/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func oilAndTiresOrder() entities.Order {
	return entities.Order{
		VehicleID: 7,
		Status:    entities.OrderStatusAbierta,
		TotalCost: dec("450.00"),
		Lines: []entities.OrderLine{
			{ServiceKey: "OIL01", PriceAtSale: dec("350.00")},
			{ServiceKey: "TIRE1", PriceAtSale: dec("100.00")},
		},
	}
}

func TestOrderGormRepository_CreateAndRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderGormRepository(db)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	folio, err := repo.Create(ctx, oilAndTiresOrder())
	require.NoError(t, err)
	assert.Greater(t, folio, int64(0))

	details, err := repo.ListLineDetails(ctx, folio)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "OIL01", details[0].ServiceKey)
	assert.Equal(t, "Cambio de aceite", details[0].ServiceName)
	assert.True(t, details[0].PriceCharged.Equal(dec("350")), "got %s", details[0].PriceCharged)
	assert.Equal(t, "TIRE1", details[1].ServiceKey)
	assert.True(t, details[1].PriceCharged.Equal(dec("100")), "got %s", details[1].PriceCharged)

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, summaries)
	first := summaries[0]
	assert.Equal(t, folio, first.Folio)
	assert.Equal(t, entities.OrderStatusAbierta, first.Status)
	assert.True(t, first.Total.Equal(dec("450")), "got %s", first.Total)
	assert.Equal(t, "Ana Gómez López", first.ClientName)
	assert.Equal(t, "Nissan Versa - ABC-123", first.VehicleInfo)
	assert.True(t, first.IntakeAt.After(before), "intake %v not after %v", first.IntakeAt, before)

	assert.Equal(t, int64(1), countRows(t, db, database.TableOrdenes))
	assert.Equal(t, int64(2), countRows(t, db, database.TableOrdenDetalles))
}

func TestOrderGormRepository_EstimatedDelivery(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderGormRepository(db)
	ctx := context.Background()

	withoutDate, err := repo.Create(ctx, oilAndTiresOrder())
	require.NoError(t, err)

	delivery := time.Date(2026, 10, 21, 17, 30, 0, 0, time.UTC)
	o := oilAndTiresOrder()
	o.EstimatedDeliveryAt = &delivery
	withDate, err := repo.Create(ctx, o)
	require.NoError(t, err)

	var headers []ordenServicioModel
	require.NoError(t, db.Order("folio_orden").Find(&headers).Error)
	require.Len(t, headers, 2)
	assert.Equal(t, withoutDate, headers[0].FolioOrden)
	assert.Nil(t, headers[0].FechaEstimadaEntrega)
	assert.Equal(t, withDate, headers[1].FolioOrden)
	require.NotNil(t, headers[1].FechaEstimadaEntrega)
	assert.True(t, headers[1].FechaEstimadaEntrega.Equal(delivery))
	assert.Equal(t, string(entities.OrderStatusAbierta), headers[1].Estado)
}

func TestOrderGormRepository_CreateRollsBack(t *testing.T) {
	cases := []struct {
		name  string
		order func() entities.Order
	}{
		{
			name: "unknown service key on last line",
			order: func() entities.Order {
				o := oilAndTiresOrder()
				o.Lines = append(o.Lines, entities.OrderLine{ServiceKey: "NOPE9", PriceAtSale: dec("10")})
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
			db := newTestDB(t)
			repo := NewOrderGormRepository(db)
			ctx := context.Background()

			existing, err := repo.Create(ctx, oilAndTiresOrder())
			require.NoError(t, err)
			before, err := repo.ListSummaries(ctx)
			require.NoError(t, err)

			folio, err := repo.Create(ctx, tc.order())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReference), "expected ErrInvalidReference, got %v", err)
			assert.Equal(t, int64(0), folio)

			after, err := repo.ListSummaries(ctx)
			require.NoError(t, err)
			require.Len(t, after, len(before))
			assert.Equal(t, before[0].Folio, after[0].Folio)
			assert.Equal(t, int64(1), countRows(t, db, database.TableOrdenes))
			assert.Equal(t, int64(2), countRows(t, db, database.TableOrdenDetalles))

			lines, err := repo.ListLineDetails(ctx, existing)
			require.NoError(t, err)
			assert.Len(t, lines, 2)
		})
	}
}

func TestOrderGormRepository_FoliosIncreaseAndHistoryIsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderGormRepository(db)
	ctx := context.Background()

	var folios []int64
	for i := 0; i < 4; i++ {
		o := oilAndTiresOrder()
		if i%2 == 1 {
			o.VehicleID = 8
		}
		folio, err := repo.Create(ctx, o)
		require.NoError(t, err)
		if len(folios) > 0 {
			assert.Greater(t, folio, folios[len(folios)-1])
		}
		folios = append(folios, folio)

		summaries, err := repo.ListSummaries(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, i+1)
		assert.Equal(t, folio, summaries[0].Folio)
	}

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	for i := 1; i < len(summaries); i++ {
		assert.Greater(t, summaries[i-1].Folio, summaries[i].Folio)
	}
	assert.Equal(t, "Luis Pérez", summaries[0].ClientName)
	assert.Equal(t, "Ford Ranger - XYZ-987", summaries[0].VehicleInfo)
}

func TestOrderGormRepository_NextFolio(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderGormRepository(db)
	ctx := context.Background()

	first, err := repo.NextFolio(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	again, err := repo.NextFolio(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	folio, err := repo.Create(ctx, oilAndTiresOrder())
	require.NoError(t, err)
	assert.Equal(t, first, folio)

	next, err := repo.NextFolio(ctx)
	require.NoError(t, err)
	assert.Equal(t, folio+1, next)

	stable, err := repo.NextFolio(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, stable)
}

func TestOrderGormRepository_PriceAtSaleIsFrozen(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderGormRepository(db)
	ctx := context.Background()

	folio, err := repo.Create(ctx, oilAndTiresOrder())
	require.NoError(t, err)

	require.NoError(t, db.Exec("UPDATE servicios SET costo_base = ? WHERE clave_servicio = ?", "499.90", "OIL01").Error)

	details, err := repo.ListLineDetails(ctx, folio)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.True(t, details[0].PriceCharged.Equal(dec("350")), "got %s", details[0].PriceCharged)
}

func TestOrderGormRepository_ListLineDetailsUnknownFolio(t *testing.T) {
	repo := NewOrderGormRepository(newTestDB(t))

	details, err := repo.ListLineDetails(context.Background(), 12345)
	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)
}

func TestOrderGormRepository_SummariesSkipOrphanedOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderGormRepository(db)
	ctx := context.Background()

	kept, err := repo.Create(ctx, oilAndTiresOrder())
	require.NoError(t, err)
	o := oilAndTiresOrder()
	o.VehicleID = 8
	orphan, err := repo.Create(ctx, o)
	require.NoError(t, err)

	// Out-of-band removal of the vehicle row.
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Exec("DELETE FROM vehiculos WHERE id_vehiculo = ?", 8).Error)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, kept, summaries[0].Folio)
	assert.NotEqual(t, orphan, summaries[0].Folio)
}

func TestOrderGormRepository_StoresGivenStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderGormRepository(db)
	ctx := context.Background()

	o := oilAndTiresOrder()
	o.Status = entities.OrderStatus("En revisión")
	folio, err := repo.Create(ctx, o)
	require.NoError(t, err)

	summaries, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, folio, summaries[0].Folio)
	assert.Equal(t, entities.OrderStatus("En revisión"), summaries[0].Status)
}

func TestFolioHighWaterSQL(t *testing.T) {
	query, args := folioHighWaterSQL(database.DialectPostgres)
	assert.Contains(t, query, "FROM "+database.OrdenesFolioSequence)
	assert.Contains(t, query, "is_called")
	assert.Empty(t, args)

	query, args = folioHighWaterSQL(database.DialectSQLite)
	assert.Contains(t, query, "sqlite_sequence")
	assert.Equal(t, []any{database.TableOrdenes}, args)
}
