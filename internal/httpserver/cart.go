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

type CartHTTP struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func customerIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.QueryParam("customer_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "customer_id required")
	}
	return uint(id), nil
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := customerIDParam(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.Items(ctx, customerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.MergeCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.MergeItem(ctx, req.CustomerID, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return httpError(err)
	}

	if err := h.Producer.PublishEvent(ctx, events.TopicCartEvents, strconv.FormatUint(uint64(item.CustomerID), 10), map[string]any{
		"type":        "cart_item_merged",
		"customer_id": item.CustomerID,
		"product_id":  item.ProductID,
		"quantity":    item.Quantity,
	}); err != nil {
		l.Warn("cart event publish failed", "error", err)
	}

	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := customerIDParam(c)
	if err != nil {
		return err
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cart item id")
	}
	qty, _ := strconv.Atoi(c.QueryParam("quantity"))

	deleted, err := h.Svc.RemoveItem(ctx, customerID, uint(itemID), qty)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": deleted})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := customerIDParam(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Clear(ctx, customerID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
