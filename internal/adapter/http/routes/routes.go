package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	_ "ordenes_servicio/docs" // swag init -g cmd/api/main.go
	"ordenes_servicio/internal/adapter/http/handlers"
	"ordenes_servicio/internal/adapter/persistence/repository"
	"ordenes_servicio/internal/infrastructure/config"
	"ordenes_servicio/internal/usecase"
	"ordenes_servicio/internal/usecase/interfaces"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Run will start the server and block until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[http][server] close store err=%v", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           NewRouter(store.Orders, store.Catalog),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[http][server] listening addr=%s driver=%s", srv.Addr, cfg.StorageDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("[http][server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter wires use cases and handlers on top of the given repositories.
func NewRouter(orders interfaces.IOrderRepository, catalog interfaces.ICatalogRepository) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(router, orders, catalog)
	return router
}

func getRoutes(router *gin.Engine, orders interfaces.IOrderRepository, catalog interfaces.ICatalogRepository) {
	orderHandler := handlers.NewOrderHandler(usecase.NewOrderUseCase(orders))
	catalogHandler := handlers.NewCatalogHandler(usecase.NewCatalogUseCase(catalog))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCatalogRoutes(v1, catalogHandler)
	addOrderRoutes(v1, orderHandler)
}

func setMiddlewares(router *gin.Engine) {
	router.Use(requestIDMiddleware())
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[http][recovery] recovered from panic request_id=%s panic=%v", c.GetString(handlers.RequestIDKey), recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
