package repository

import (
	"context"
	"fmt"
	"log"

	"ordenes_servicio/internal/infrastructure/config"
	"ordenes_servicio/internal/infrastructure/database"
	"ordenes_servicio/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"gorm.io/gorm"
)

// Store bundles the repositories of the configured storage driver.
//
// Exactly one of DB and DynamoDB is set.
type Store struct {
	Orders  interfaces.IOrderRepository
	Catalog interfaces.ICatalogRepository

	DB       *gorm.DB
	DynamoDB *dynamodb.Client
	Tables   DynamoTables
}

// Open connects to the store selected by cfg.StorageDriver. When
// cfg.AutoMigrate is set the schema (or the DynamoDB tables) is created first.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	if cfg.IsRelational() {
		db, err := database.ConnectGorm(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", cfg.StorageDriver, err)
		}
		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				_ = database.Close(db)
				return nil, err
			}
		}
		return &Store{
			Orders:  NewOrderGormRepository(db),
			Catalog: NewCatalogGormRepository(db),
			DB:      db,
		}, nil
	}

	client, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return nil, fmt.Errorf("connect dynamodb: %w", err)
	}
	tables := NewDynamoTables(cfg.DynamoDB.TablePrefix)
	if cfg.AutoMigrate {
		if err := CreateDynamoTables(ctx, client, tables); err != nil {
			return nil, err
		}
	}
	return &Store{
		Orders:   NewOrderDynamoRepository(client, tables),
		Catalog:  NewCatalogDynamoRepository(client, tables),
		DynamoDB: client,
		Tables:   tables,
	}, nil
}

// Migrate creates the schema of whichever driver backs the store.
func (s *Store) Migrate(ctx context.Context) error {
	if s.DB != nil {
		return database.Migrate(ctx, s.DB)
	}
	return CreateDynamoTables(ctx, s.DynamoDB, s.Tables)
}

// Seed loads a catalog fixture, skipping rows that already exist.
func (s *Store) Seed(ctx context.Context, f database.CatalogFixture) (database.SeedResult, error) {
	if s.DB != nil {
		return database.SeedCatalog(ctx, s.DB, f)
	}
	return SeedDynamoCatalog(ctx, s.DynamoDB, s.Tables, f)
}

func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	log.Printf("[database][gorm] closing dialect=%s", s.DB.Dialector.Name())
	return database.Close(s.DB)
}
