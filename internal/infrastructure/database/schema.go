package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// Table names shared by the relational repositories.
const (
	TableClientes        = "clientes"
	TableVehiculos       = "vehiculos"
	TableServicios       = "servicios"
	TableOrdenes         = "ordenes_servicio"
	TableOrdenDetalles   = "orden_detalles_servicios"
	OrdenesFolioSequence = "ordenes_servicio_folio_orden_seq"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS clientes (
		id_cliente BIGSERIAL PRIMARY KEY,
		rfc VARCHAR(13) NOT NULL,
		nombre VARCHAR(100) NOT NULL,
		apellido_paterno VARCHAR(100) NOT NULL,
		apellido_materno VARCHAR(100)
	)`,
	`CREATE TABLE IF NOT EXISTS vehiculos (
		id_vehiculo BIGSERIAL PRIMARY KEY,
		placas VARCHAR(15) NOT NULL,
		marca VARCHAR(50) NOT NULL,
		modelo VARCHAR(50) NOT NULL,
		id_cliente BIGINT NOT NULL REFERENCES clientes (id_cliente)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vehiculos_id_cliente ON vehiculos (id_cliente)`,
	`CREATE TABLE IF NOT EXISTS servicios (
		clave_servicio VARCHAR(20) PRIMARY KEY,
		nombre_servicio VARCHAR(100) NOT NULL,
		costo_base NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ordenes_servicio (
		folio_orden BIGSERIAL PRIMARY KEY,
		id_vehiculo BIGINT NOT NULL REFERENCES vehiculos (id_vehiculo),
		fecha_ingreso TIMESTAMPTZ NOT NULL,
		fecha_estimada_entrega TIMESTAMPTZ NULL,
		estado VARCHAR(20) NOT NULL,
		costo_total NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orden_detalles_servicios (
		folio_orden BIGINT NOT NULL REFERENCES ordenes_servicio (folio_orden),
		renglon INTEGER NOT NULL,
		clave_servicio VARCHAR(20) NOT NULL REFERENCES servicios (clave_servicio),
		precio_al_momento NUMERIC(10,2) NOT NULL,
		PRIMARY KEY (folio_orden, renglon)
	)`,
}

// SQLite needs AUTOINCREMENT on the folio so that sqlite_sequence keeps the
// identity high-water mark and folios are never reused.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS clientes (
		id_cliente INTEGER PRIMARY KEY,
		rfc VARCHAR(13) NOT NULL,
		nombre VARCHAR(100) NOT NULL,
		apellido_paterno VARCHAR(100) NOT NULL,
		apellido_materno VARCHAR(100)
	)`,
	`CREATE TABLE IF NOT EXISTS vehiculos (
		id_vehiculo INTEGER PRIMARY KEY,
		placas VARCHAR(15) NOT NULL,
		marca VARCHAR(50) NOT NULL,
		modelo VARCHAR(50) NOT NULL,
		id_cliente INTEGER NOT NULL REFERENCES clientes (id_cliente)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vehiculos_id_cliente ON vehiculos (id_cliente)`,
	`CREATE TABLE IF NOT EXISTS servicios (
		clave_servicio VARCHAR(20) PRIMARY KEY,
		nombre_servicio VARCHAR(100) NOT NULL,
		costo_base NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ordenes_servicio (
		folio_orden INTEGER PRIMARY KEY AUTOINCREMENT,
		id_vehiculo INTEGER NOT NULL REFERENCES vehiculos (id_vehiculo),
		fecha_ingreso TIMESTAMP NOT NULL,
		fecha_estimada_entrega TIMESTAMP NULL,
		estado VARCHAR(20) NOT NULL,
		costo_total NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orden_detalles_servicios (
		folio_orden INTEGER NOT NULL REFERENCES ordenes_servicio (folio_orden),
		renglon INTEGER NOT NULL,
		clave_servicio VARCHAR(20) NOT NULL REFERENCES servicios (clave_servicio),
		precio_al_momento NUMERIC(10,2) NOT NULL,
		PRIMARY KEY (folio_orden, renglon)
	)`,
}

// Migrate creates the schema if it does not exist. It is idempotent.
func Migrate(ctx context.Context, db *gorm.DB) error {
	var statements []string
	switch name := db.Dialector.Name(); name {
	case DialectPostgres:
		statements = postgresSchema
	case DialectSQLite:
		statements = sqliteSchema
	default:
		return fmt.Errorf("unsupported dialect %q", name)
	}

	for i, stmt := range statements {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	log.Printf("[database][migrate] schema ready dialect=%s statements=%d", db.Dialector.Name(), len(statements))
	return nil
}
