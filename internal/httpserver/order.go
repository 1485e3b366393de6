package httpserver

import (
	"net/http"
	"strconv"

	"github.com/beggab/storechina/internal/events"
	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/service"
	"github.com/beggab/storechina/internal/transport"
	"github.com/labstack/echo/v4"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	lines := make([]service.CartLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = item.ToCartLine()
	}

	orderID, err := h.Svc.PlaceOrder(ctx, req.Identity.ToIdentity(), lines)
	if err != nil {
		l.Warn("place_order_error", "error", err)
		return httpError(err)
	}

	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, strconv.FormatUint(uint64(orderID), 10), map[string]any{
		"type":        "order_created",
		"order_id":    orderID,
		"telegram_id": req.Identity.TelegramID,
	}); err != nil {
		l.Warn("order event publish failed", "error", err)
	}

	l.Info("place_order_success", "order_id", orderID)
	return c.JSON(http.StatusCreated, transport.PlaceOrderResponse{OrderID: orderID})
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	var req transport.IdentityPayload
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	orderID, err := h.Svc.Checkout(ctx, req.ToIdentity())
	if err != nil {
		l.Warn("checkout_error", "error", err)
		return httpError(err)
	}

	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, strconv.FormatUint(uint64(orderID), 10), map[string]any{
		"type":        "order_created",
		"order_id":    orderID,
		"telegram_id": req.TelegramID,
	}); err != nil {
		l.Warn("order event publish failed", "error", err)
	}

	l.Info("checkout_success", "order_id", orderID)
	return c.JSON(http.StatusCreated, transport.PlaceOrderResponse{OrderID: orderID})
}

func (h *OrderHTTP) History(c echo.Context) error {
	ctx := c.Request().Context()

	telegramID, err := strconv.ParseInt(c.QueryParam("telegram_id"), 10, 64)
	if err != nil || telegramID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "telegram_id required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.Svc.History(ctx, telegramID, limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.ByID(ctx, uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}
