package interfaces

import (
	"context"
	"ordenes_servicio/internal/domain/entities"
)

//go:generate mockgen -source=catalog_repository_interface.go -destination=mocks/mock_catalog_repository_interface.go -package=mock_interfaces

// ICatalogRepository abstracts the read-only catalog lookups.
//
// Implementations return an empty (non-nil) slice when nothing matches,
// never an error.

type ICatalogRepository interface {
	ListClients(ctx context.Context) ([]entities.Client, error)
	ListServices(ctx context.Context) ([]entities.Service, error)
	ListVehiclesByClient(ctx context.Context, clientID int64) ([]entities.Vehicle, error)
}
