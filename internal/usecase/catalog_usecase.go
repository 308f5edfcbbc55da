package usecase

import (
	"context"
	"log"
	"ordenes_servicio/internal/domain/entities"
	"ordenes_servicio/internal/usecase/interfaces"
)

// ICatalogUseCase exposes the catalog lookups used to fill the new-order form.

type ICatalogUseCase interface {
	ListClients(ctx context.Context) ([]entities.Client, error)
	ListServices(ctx context.Context) ([]entities.Service, error)
	ListVehiclesByClient(ctx context.Context, clientID int64) ([]entities.Vehicle, error)
}

type CatalogUseCase struct {
	repo interfaces.ICatalogRepository
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(repo interfaces.ICatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

func (u *CatalogUseCase) ListClients(ctx context.Context) ([]entities.Client, error) {
	clients, err := u.repo.ListClients(ctx)
	if err != nil {
		log.Printf("[catalog][usecase] list clients failed err=%v", err)
		return nil, err
	}
	if clients == nil {
		clients = []entities.Client{}
	}
	return clients, nil
}

func (u *CatalogUseCase) ListServices(ctx context.Context) ([]entities.Service, error) {
	services, err := u.repo.ListServices(ctx)
	if err != nil {
		log.Printf("[catalog][usecase] list services failed err=%v", err)
		return nil, err
	}
	if services == nil {
		services = []entities.Service{}
	}
	return services, nil
}

// ListVehiclesByClient returns an empty list, not an error, for a client
// that does not exist, zero and negative ids included.
func (u *CatalogUseCase) ListVehiclesByClient(ctx context.Context, clientID int64) ([]entities.Vehicle, error) {
	vehicles, err := u.repo.ListVehiclesByClient(ctx, clientID)
	if err != nil {
		log.Printf("[catalog][usecase] list vehicles failed client_id=%d err=%v", clientID, err)
		return nil, err
	}
	if vehicles == nil {
		vehicles = []entities.Vehicle{}
	}
	return vehicles, nil
}
