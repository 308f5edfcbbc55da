package handlers

import (
	"errors"
	"log"
	"net/http"
	request "ordenes_servicio/internal/adapter/http/dto/request"
	response "ordenes_servicio/internal/adapter/http/dto/response"
	"ordenes_servicio/internal/usecase"
	"ordenes_servicio/internal/usecase/interfaces"
	"ordenes_servicio/pkg"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=../../../usecase/order_usecase.go -destination=mocks/mock_order_usecase.go -package=mocks

var (
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	errInvalidFolio        = pkg.NewDomainErrorSimple("INVALID_FOLIO", "Folio must be an integer", http.StatusBadRequest)
)

// OrderHandler handles HTTP requests for service orders.
//
// POST /orders answers with the {success, folio, message} envelope; the read
// endpoints answer with plain JSON arrays or pkg.HTTPError.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder godoc
// @Summary      Create a service order
// @Description  Persists the order header and every line in one transaction and returns the folio assigned by the store.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      request.CreateOrderRequest  true  "Order to create"
// @Success      201    {object}  response.CreateOrderResponse
// @Failure      400    {object}  response.CreateOrderResponse
// @Failure      422    {object}  response.CreateOrderResponse
// @Failure      500    {object}  response.CreateOrderResponse
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[order][handler] invalid payload request_id=%s err=%v", requestID(c), err)
		c.JSON(errInvalidOrderPayload.HTTPStatus, response.OrderFailed(errInvalidOrderPayload.Message))
		return
	}

	folio, err := h.usecase.CreateOrder(c.Request.Context(), usecase.CreateOrderCommand{
		VehicleID:           payload.VehicleID,
		TotalCost:           payload.TotalCost,
		EstimatedDeliveryAt: payload.ResolveEstimatedDelivery(),
		Lines:               payload.ResolveLines(),
	})
	if err != nil {
		appErr := mapOrderError(err)
		log.Printf("[order][handler] create failed request_id=%s code=%s err=%v", requestID(c), appErr.Code, err)
		c.JSON(appErr.HTTPStatus, response.OrderFailed(appErr.Message))
		return
	}
	log.Printf("[order][handler] create success request_id=%s folio=%d", requestID(c), folio)

	c.JSON(http.StatusCreated, response.OrderCreated(folio))
}

// ListOrders godoc
// @Summary      Order history
// @Description  Order summaries joined with vehicle and client, newest folio first.
// @Tags         orders
// @Produce      json
// @Success      200  {array}   response.OrderSummaryResponse
// @Failure      500  {object}  pkg.HTTPError
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	summaries, err := h.usecase.ListOrderSummaries(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrderSummaries(summaries))
}

// NextFolio godoc
// @Summary      Next folio estimate
// @Description  Advisory value shown on the new-order form. It is not reserved.
// @Tags         orders
// @Produce      json
// @Success      200  {object}  response.NextFolioResponse
// @Failure      500  {object}  pkg.HTTPError
// @Router       /orders/next-folio [get]
func (h *OrderHandler) NextFolio(c *gin.Context) {
	folio, err := h.usecase.NextFolio(c.Request.Context())
	if err != nil {
		h.fail(c, "next-folio", err)
		return
	}
	c.JSON(http.StatusOK, response.NextFolioResponse{Folio: folio})
}

// ListLineDetails godoc
// @Summary      Lines of one order
// @Description  Service key, service name and the price charged at sale, in line order.
// @Tags         orders
// @Produce      json
// @Param        folio  path      int  true  "Order folio"
// @Success      200    {array}   response.LineDetailResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      500    {object}  pkg.HTTPError
// @Router       /orders/{folio}/lines [get]
func (h *OrderHandler) ListLineDetails(c *gin.Context) {
	var uri request.FolioURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(errInvalidFolio.HTTPStatus, errInvalidFolio.ToHTTPError())
		return
	}

	details, err := h.usecase.ListLineDetails(c.Request.Context(), uri.Folio)
	if err != nil {
		h.fail(c, "details", err)
		return
	}
	c.JSON(http.StatusOK, response.FromLineDetails(details))
}

func (h *OrderHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapOrderError(err)
	log.Printf("[order][handler] %s failed request_id=%s code=%s err=%v", op, requestID(c), appErr.Code, err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapOrderError never exposes the store's error text; the cause stays in
// AppError.Err for logs.
func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidVehicleID):
		return pkg.NewDomainErrorSimple("INVALID_VEHICLE", "vehicleId must be a positive number", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmptyOrderLines):
		return pkg.NewDomainErrorSimple("EMPTY_ORDER", "An order needs at least one service line", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidServiceKey):
		return pkg.NewDomainErrorSimple("INVALID_SERVICE_KEY", "Every line needs a service key", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidLinePrice), errors.Is(err, usecase.ErrInvalidTotalCost):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amounts cannot be negative", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidAmountPrecision):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amounts can have at most two decimals", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrInvalidReference):
		return pkg.NewDomainError("INVALID_REFERENCE", "The vehicle or a service of the order does not exist", err, http.StatusUnprocessableEntity)
	case errors.Is(err, interfaces.ErrTooManyLines):
		return pkg.NewDomainError("ORDER_TOO_LARGE", "The order has too many lines", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrOrderNotPersisted):
		return pkg.NewDomainError("ORDER_NOT_PERSISTED", "The order could not be saved", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
