package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"ordenes_servicio/internal/infrastructure/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testCatalog = database.CatalogFixture{
	Clients: []database.ClientFixture{
		{ID: 1, RFC: "GOLA800101AB1", Nombre: "Ana", ApellidoPaterno: "Gómez", ApellidoMaterno: "López"},
		{ID: 2, RFC: "PERL750505CD2", Nombre: "Luis", ApellidoPaterno: "Pérez"},
		{ID: 3, RFC: "RUMA900909EF3", Nombre: "Marta", ApellidoPaterno: "Ruiz", ApellidoMaterno: ""},
	},
	Vehicles: []database.VehicleFixture{
		{ID: 7, Placas: "ABC-123", Marca: "Nissan", Modelo: "Versa", ClientID: 1},
		{ID: 8, Placas: "XYZ-987", Marca: "Ford", Modelo: "Ranger", ClientID: 2},
		{ID: 9, Placas: "JKL-456", Marca: "Chevrolet", Modelo: "Aveo", ClientID: 1},
	},
	Services: []database.ServiceFixture{
		{Clave: "OIL01", Nombre: "Cambio de aceite", CostoBase: "350.00"},
		{Clave: "TIRE1", Nombre: "Rotación de llantas", CostoBase: "100.00"},
		{Clave: "BRK02", Nombre: "Balatas delanteras", CostoBase: "800.00"},
	},
}

// newTestDB opens a private in-memory SQLite database with the schema and the
// test catalog loaded.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := database.OpenGorm(sqlite.Open(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))
	_, err = database.SeedCatalog(ctx, db, testCatalog)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}
