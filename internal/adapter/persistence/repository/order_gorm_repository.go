package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"ordenes_servicio/internal/domain/entities"
	"ordenes_servicio/internal/infrastructure/database"
	"ordenes_servicio/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// lineBatchSize bounds the rows of one multi-row INSERT for order lines.
const lineBatchSize = 100

const orderSummariesSQL = `
SELECT o.folio_orden AS folio,
       o.fecha_ingreso AS fecha,
       %s AS nombre_cliente,
       v.marca || ' ' || v.modelo || ' - ' || v.placas AS info_vehiculo,
       o.estado AS estado,
       o.costo_total AS total
FROM ordenes_servicio o
INNER JOIN vehiculos v ON v.id_vehiculo = o.id_vehiculo
INNER JOIN clientes c ON c.id_cliente = v.id_cliente
ORDER BY o.folio_orden DESC`

const lineDetailsSQL = `
SELECT d.clave_servicio AS clave_servicio,
       s.nombre_servicio AS nombre_servicio,
       d.precio_al_momento AS precio_cobrado
FROM orden_detalles_servicios d
INNER JOIN servicios s ON s.clave_servicio = d.clave_servicio
WHERE d.folio_orden = ?
ORDER BY d.renglon`

// OrderGormRepository persists service orders in PostgreSQL or SQLite.
//
// Create is the only write path: the header and every line are inserted in
// one transaction, so a failure on any line leaves no header behind.
type OrderGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderGormRepository)(nil)

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db, now: time.Now}
}

func (r *OrderGormRepository) Create(ctx context.Context, o entities.Order) (int64, error) {
	header := toOrdenServicioModel(o, r.now().UTC())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&header).Error; err != nil {
			return err
		}
		if len(o.Lines) == 0 {
			return nil
		}
		// The folio only exists once the header insert returned.
		lines := toOrdenDetalleModels(header.FolioOrden, o.Lines)
		return tx.CreateInBatches(&lines, lineBatchSize).Error
	})
	if err != nil {
		log.Printf("[order][repository] create rolled back vehicle_id=%d lines=%d err=%v", o.VehicleID, len(o.Lines), err)
		return 0, classifyWriteError(err)
	}
	return header.FolioOrden, nil
}

// NextFolio returns the identity high-water mark plus one. The value is not
// reserved: a concurrent Create may take it first.
func (r *OrderGormRepository) NextFolio(ctx context.Context) (int64, error) {
	var highWater int64
	db := r.db.WithContext(ctx)

	query, args := folioHighWaterSQL(db.Dialector.Name())
	if err := db.Raw(query, args...).Scan(&highWater).Error; err != nil {
		return 0, err
	}
	return highWater + 1, nil
}

// folioHighWaterSQL reads the last folio handed out by the identity, or 0
// when none was.
func folioHighWaterSQL(dialect string) (string, []any) {
	switch dialect {
	case database.DialectPostgres:
		return "SELECT CASE WHEN is_called THEN last_value ELSE 0 END FROM " + database.OrdenesFolioSequence, nil
	case database.DialectSQLite:
		return "SELECT COALESCE((SELECT seq FROM sqlite_sequence WHERE name = ?), 0)", []any{database.TableOrdenes}
	default:
		return "SELECT COALESCE(MAX(folio_orden), 0) FROM " + database.TableOrdenes, nil
	}
}

// ListSummaries joins orders with vehicles and clients. Orders whose vehicle
// or client row is gone are not listed.
func (r *OrderGormRepository) ListSummaries(ctx context.Context) ([]entities.OrderSummary, error) {
	var rows []ordenResumenRow
	if err := r.db.WithContext(ctx).Raw(orderSummariesQuery()).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entities.OrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromOrdenResumenRow(row))
	}
	return out, nil
}

func (r *OrderGormRepository) ListLineDetails(ctx context.Context, folio int64) ([]entities.LineDetail, error) {
	var rows []detalleResumenRow
	if err := r.db.WithContext(ctx).Raw(lineDetailsSQL, folio).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entities.LineDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromDetalleResumenRow(row))
	}
	return out, nil
}

func orderSummariesQuery() string {
	return fmt.Sprintf(orderSummariesSQL, clientFullNameSQL("c"))
}
