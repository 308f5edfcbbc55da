package routes

import (
	"ordenes_servicio/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders   = "/orders"
	PathClients  = "/clients"
	PathVehicles = "/vehicles"
	PathServices = "/services"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("", orderHandler.ListOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/next-folio", orderHandler.NextFolio)
		orders.GET("/:folio/lines", orderHandler.ListLineDetails)
	}
}

func addCatalogRoutes(rg *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	rg.GET(PathClients, catalogHandler.ListClients)
	rg.GET(PathClients+"/:client_id/vehicles", catalogHandler.ListClientVehicles)
	rg.GET(PathVehicles, catalogHandler.ListVehicles)
	rg.GET(PathServices, catalogHandler.ListServices)
}
