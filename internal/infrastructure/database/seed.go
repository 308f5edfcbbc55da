package database

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogFixture is the YAML document accepted by the seed command:
//
//	clients:
//	  - {id: 1, rfc: GOLA800101AB1, nombre: Ana, apellido_paterno: Gómez, apellido_materno: López}
//	vehicles:
//	  - {id: 7, placas: ABC-123, marca: Nissan, modelo: Versa, client_id: 1}
//	services:
//	  - {clave: OIL01, nombre: Cambio de aceite, costo_base: "350.00"}
type CatalogFixture struct {
	Clients  []ClientFixture  `yaml:"clients"`
	Vehicles []VehicleFixture `yaml:"vehicles"`
	Services []ServiceFixture `yaml:"services"`
}

type ClientFixture struct {
	ID              int64  `yaml:"id"`
	RFC             string `yaml:"rfc"`
	Nombre          string `yaml:"nombre"`
	ApellidoPaterno string `yaml:"apellido_paterno"`
	ApellidoMaterno string `yaml:"apellido_materno"`
}

type VehicleFixture struct {
	ID       int64  `yaml:"id"`
	Placas   string `yaml:"placas"`
	Marca    string `yaml:"marca"`
	Modelo   string `yaml:"modelo"`
	ClientID int64  `yaml:"client_id"`
}

type ServiceFixture struct {
	Clave     string `yaml:"clave"`
	Nombre    string `yaml:"nombre"`
	CostoBase string `yaml:"costo_base"`
}

// SeedResult counts the rows actually inserted; rows already present are skipped.
type SeedResult struct {
	Clients  int64
	Vehicles int64
	Services int64
}

type clienteRow struct {
	IDCliente       int64   `gorm:"column:id_cliente;primaryKey"`
	RFC             string  `gorm:"column:rfc"`
	Nombre          string  `gorm:"column:nombre"`
	ApellidoPaterno string  `gorm:"column:apellido_paterno"`
	ApellidoMaterno *string `gorm:"column:apellido_materno"`
}

type vehiculoRow struct {
	IDVehiculo int64  `gorm:"column:id_vehiculo;primaryKey"`
	Placas     string `gorm:"column:placas"`
	Marca      string `gorm:"column:marca"`
	Modelo     string `gorm:"column:modelo"`
	IDCliente  int64  `gorm:"column:id_cliente"`
}

type servicioRow struct {
	ClaveServicio  string          `gorm:"column:clave_servicio;primaryKey"`
	NombreServicio string          `gorm:"column:nombre_servicio"`
	CostoBase      decimal.Decimal `gorm:"column:costo_base"`
}

func LoadCatalogFixture(r io.Reader) (CatalogFixture, error) {
	var f CatalogFixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return CatalogFixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	return f, nil
}

// SeedCatalog inserts the fixture rows that are not present yet, in a single
// transaction.
func SeedCatalog(ctx context.Context, db *gorm.DB, f CatalogFixture) (SeedResult, error) {
	clientes := make([]clienteRow, 0, len(f.Clients))
	for _, c := range f.Clients {
		row := clienteRow{
			IDCliente:       c.ID,
			RFC:             strings.TrimSpace(c.RFC),
			Nombre:          strings.TrimSpace(c.Nombre),
			ApellidoPaterno: strings.TrimSpace(c.ApellidoPaterno),
		}
		if m := strings.TrimSpace(c.ApellidoMaterno); m != "" {
			row.ApellidoMaterno = &m
		}
		clientes = append(clientes, row)
	}

	vehiculos := make([]vehiculoRow, 0, len(f.Vehicles))
	for _, v := range f.Vehicles {
		vehiculos = append(vehiculos, vehiculoRow{IDVehiculo: v.ID, Placas: v.Placas, Marca: v.Marca, Modelo: v.Modelo, IDCliente: v.ClientID})
	}

	servicios := make([]servicioRow, 0, len(f.Services))
	for _, s := range f.Services {
		price, err := ParseFixturePrice(s.CostoBase)
		if err != nil {
			return SeedResult{}, fmt.Errorf("service %s: costo_base: %w", s.Clave, err)
		}
		servicios = append(servicios, servicioRow{ClaveServicio: strings.TrimSpace(s.Clave), NombreServicio: s.Nombre, CostoBase: price})
	}

	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if res.Clients, err = insertIgnore(tx, TableClientes, &clientes, len(clientes)); err != nil {
			return err
		}
		if res.Vehicles, err = insertIgnore(tx, TableVehiculos, &vehiculos, len(vehiculos)); err != nil {
			return err
		}
		if res.Services, err = insertIgnore(tx, TableServicios, &servicios, len(servicios)); err != nil {
			return err
		}
		if tx.Dialector.Name() == DialectPostgres {
			return syncPostgresSequences(tx)
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	log.Printf("[database][seed] catalog seeded clients=%d vehicles=%d services=%d", res.Clients, res.Vehicles, res.Services)
	return res, nil
}

// ParseFixturePrice parses a costo_base value; prices are kept as strings in
// YAML so that no float rounding happens on the way in.
func ParseFixturePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %s", d)
	}
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, fmt.Errorf("price %s has more than two decimals", d)
	}
	return d, nil
}

func insertIgnore(tx *gorm.DB, table string, rows any, n int) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	result := tx.Table(table).Clauses(clause.OnConflict{DoNothing: true}).Create(rows)
	if result.Error != nil {
		return 0, fmt.Errorf("seed %s: %w", table, result.Error)
	}
	return result.RowsAffected, nil
}

// Explicit ids do not advance BIGSERIAL sequences.
func syncPostgresSequences(tx *gorm.DB) error {
	for _, t := range [][2]string{{TableClientes, "id_cliente"}, {TableVehiculos, "id_vehiculo"}} {
		stmt := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 0) + 1, false) FROM %s", t[0], t[1], t[1], t[0])
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("sync sequence %s: %w", t[0], err)
		}
	}
	return nil
}
