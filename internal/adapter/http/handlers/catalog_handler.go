package handlers

import (
	"log"
	"net/http"
	request "ordenes_servicio/internal/adapter/http/dto/request"
	response "ordenes_servicio/internal/adapter/http/dto/response"
	"ordenes_servicio/internal/usecase"
	"ordenes_servicio/pkg"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=../../../usecase/catalog_usecase.go -destination=mocks/mock_catalog_usecase.go -package=mocks

var errInvalidClientID = pkg.NewDomainErrorSimple("INVALID_CLIENT", "client_id must be an integer", http.StatusBadRequest)

// CatalogHandler serves the read-only catalogs used by the new-order form.
type CatalogHandler struct {
	usecase usecase.ICatalogUseCase
}

func NewCatalogHandler(uc usecase.ICatalogUseCase) *CatalogHandler {
	return &CatalogHandler{usecase: uc}
}

// ListClients godoc
// @Summary      List clients
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   response.ClientResponse
// @Failure      500  {object}  pkg.HTTPError
// @Router       /clients [get]
func (h *CatalogHandler) ListClients(c *gin.Context) {
	clients, err := h.usecase.ListClients(c.Request.Context())
	if err != nil {
		h.fail(c, "clients", err)
		return
	}
	c.JSON(http.StatusOK, response.FromClients(clients))
}

// ListServices godoc
// @Summary      List services
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   response.ServiceResponse
// @Failure      500  {object}  pkg.HTTPError
// @Router       /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.usecase.ListServices(c.Request.Context())
	if err != nil {
		h.fail(c, "services", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServices(services))
}

// ListClientVehicles godoc
// @Summary      Vehicles of a client
// @Description  An unknown client yields an empty list.
// @Tags         catalog
// @Produce      json
// @Param        client_id  path      int  true  "Client id"
// @Success      200        {array}   response.VehicleResponse
// @Failure      400        {object}  pkg.HTTPError
// @Failure      500        {object}  pkg.HTTPError
// @Router       /clients/{client_id}/vehicles [get]
func (h *CatalogHandler) ListClientVehicles(c *gin.Context) {
	var uri request.ClientURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(errInvalidClientID.HTTPStatus, errInvalidClientID.ToHTTPError())
		return
	}
	h.listVehicles(c, uri.ClientID)
}

// ListVehicles godoc
// @Summary      Vehicles of a client (query form)
// @Tags         catalog
// @Produce      json
// @Param        client_id  query     int  true  "Client id"
// @Success      200        {array}   response.VehicleResponse
// @Failure      400        {object}  pkg.HTTPError
// @Failure      500        {object}  pkg.HTTPError
// @Router       /vehicles [get]
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	var q request.VehiclesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidClientID.HTTPStatus, errInvalidClientID.ToHTTPError())
		return
	}
	h.listVehicles(c, *q.ClientID)
}

func (h *CatalogHandler) listVehicles(c *gin.Context, clientID int64) {
	vehicles, err := h.usecase.ListVehiclesByClient(c.Request.Context(), clientID)
	if err != nil {
		h.fail(c, "vehicles", err)
		return
	}
	c.JSON(http.StatusOK, response.FromVehicles(vehicles))
}

func (h *CatalogHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapCatalogError(err)
	log.Printf("[catalog][handler] %s failed request_id=%s code=%s err=%v", op, requestID(c), appErr.Code, err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapCatalogError redacts store failures; catalog reads have no domain errors.
func mapCatalogError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
