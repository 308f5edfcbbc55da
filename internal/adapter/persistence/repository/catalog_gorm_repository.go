package repository

import (
	"context"

	"ordenes_servicio/internal/domain/entities"
	"ordenes_servicio/internal/infrastructure/database"
	"ordenes_servicio/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// CatalogGormRepository reads the client, vehicle and service catalogs.
// Rows come back in the store's natural order.
type CatalogGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ICatalogRepository = (*CatalogGormRepository)(nil)

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ListClients(ctx context.Context) ([]entities.Client, error) {
	var rows []clienteModel
	err := r.db.WithContext(ctx).
		Table(database.TableClientes).
		Select("id_cliente, rfc, " + clientFullNameSQL("") + " AS nombre_completo").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entities.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.Client{ID: row.IDCliente, TaxID: row.RFC, FullName: row.NombreCompleto})
	}
	return out, nil
}

func (r *CatalogGormRepository) ListServices(ctx context.Context) ([]entities.Service, error) {
	var rows []servicioModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entities.Service, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.Service{Key: row.ClaveServicio, Name: row.NombreServicio, BasePrice: row.CostoBase})
	}
	return out, nil
}

func (r *CatalogGormRepository) ListVehiclesByClient(ctx context.Context, clientID int64) ([]entities.Vehicle, error) {
	var rows []vehiculoModel
	if err := r.db.WithContext(ctx).Where("id_cliente = ?", clientID).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entities.Vehicle, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.Vehicle{
			ID:       row.IDVehiculo,
			Plate:    row.Placas,
			Make:     row.Marca,
			Model:    row.Modelo,
			ClientID: row.IDCliente,
		})
	}
	return out, nil
}
