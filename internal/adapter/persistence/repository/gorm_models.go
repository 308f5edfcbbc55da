package repository

import (
	"time"

	"ordenes_servicio/internal/domain/entities"
	"ordenes_servicio/internal/infrastructure/database"

	"github.com/shopspring/decimal"
)

type ordenServicioModel struct {
	FolioOrden           int64           `gorm:"column:folio_orden;primaryKey;autoIncrement"`
	IDVehiculo           int64           `gorm:"column:id_vehiculo"`
	FechaIngreso         time.Time       `gorm:"column:fecha_ingreso"`
	FechaEstimadaEntrega *time.Time      `gorm:"column:fecha_estimada_entrega"`
	Estado               string          `gorm:"column:estado"`
	CostoTotal           decimal.Decimal `gorm:"column:costo_total"`
}

func (ordenServicioModel) TableName() string { return database.TableOrdenes }

type ordenDetalleModel struct {
	FolioOrden      int64           `gorm:"column:folio_orden;primaryKey;autoIncrement:false"`
	Renglon         int             `gorm:"column:renglon;primaryKey;autoIncrement:false"`
	ClaveServicio   string          `gorm:"column:clave_servicio"`
	PrecioAlMomento decimal.Decimal `gorm:"column:precio_al_momento"`
}

func (ordenDetalleModel) TableName() string { return database.TableOrdenDetalles }

type clienteModel struct {
	IDCliente      int64  `gorm:"column:id_cliente"`
	RFC            string `gorm:"column:rfc"`
	NombreCompleto string `gorm:"column:nombre_completo"`
}

type vehiculoModel struct {
	IDVehiculo int64  `gorm:"column:id_vehiculo"`
	Placas     string `gorm:"column:placas"`
	Marca      string `gorm:"column:marca"`
	Modelo     string `gorm:"column:modelo"`
	IDCliente  int64  `gorm:"column:id_cliente"`
}

func (vehiculoModel) TableName() string { return database.TableVehiculos }

type servicioModel struct {
	ClaveServicio  string          `gorm:"column:clave_servicio"`
	NombreServicio string          `gorm:"column:nombre_servicio"`
	CostoBase      decimal.Decimal `gorm:"column:costo_base"`
}

func (servicioModel) TableName() string { return database.TableServicios }

type ordenResumenRow struct {
	Folio         int64           `gorm:"column:folio"`
	Fecha         time.Time       `gorm:"column:fecha"`
	NombreCliente string          `gorm:"column:nombre_cliente"`
	InfoVehiculo  string          `gorm:"column:info_vehiculo"`
	Estado        string          `gorm:"column:estado"`
	Total         decimal.Decimal `gorm:"column:total"`
}

type detalleResumenRow struct {
	ClaveServicio  string          `gorm:"column:clave_servicio"`
	NombreServicio string          `gorm:"column:nombre_servicio"`
	PrecioCobrado  decimal.Decimal `gorm:"column:precio_cobrado"`
}

// clientFullNameSQL renders "nombre apellido_paterno [apellido_materno]".
// The maternal surname and its separator are omitted when NULL or empty.
func clientFullNameSQL(alias string) string {
	p := ""
	if alias != "" {
		p = alias + "."
	}
	return p + "nombre || ' ' || " + p + "apellido_paterno || COALESCE(' ' || NULLIF(" + p + "apellido_materno, ''), '')"
}

func toOrdenServicioModel(o entities.Order, intake time.Time) ordenServicioModel {
	m := ordenServicioModel{
		IDVehiculo:   o.VehicleID,
		FechaIngreso: intake,
		Estado:       string(o.Status),
		CostoTotal:   o.TotalCost,
	}
	if o.EstimatedDeliveryAt != nil {
		d := o.EstimatedDeliveryAt.UTC()
		m.FechaEstimadaEntrega = &d
	}
	return m
}

func toOrdenDetalleModels(folio int64, lines []entities.OrderLine) []ordenDetalleModel {
	rows := make([]ordenDetalleModel, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, ordenDetalleModel{
			FolioOrden:      folio,
			Renglon:         i + 1,
			ClaveServicio:   l.ServiceKey,
			PrecioAlMomento: l.PriceAtSale,
		})
	}
	return rows
}

func fromOrdenResumenRow(r ordenResumenRow) entities.OrderSummary {
	return entities.OrderSummary{
		Folio:       r.Folio,
		IntakeAt:    r.Fecha,
		ClientName:  r.NombreCliente,
		VehicleInfo: r.InfoVehiculo,
		Status:      entities.OrderStatus(r.Estado),
		Total:       r.Total,
	}
}

func fromDetalleResumenRow(r detalleResumenRow) entities.LineDetail {
	return entities.LineDetail{
		ServiceKey:   r.ClaveServicio,
		ServiceName:  r.NombreServicio,
		PriceCharged: r.PrecioCobrado,
	}
}
