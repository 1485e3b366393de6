package httpserver

import (
	"net/http"

	"github.com/beggab/storechina/internal/events"
	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/service"
	"github.com/beggab/storechina/internal/transport"
	"github.com/labstack/echo/v4"
)

type CustomerHTTP struct {
	Svc      *service.CustomerService
	Producer *events.Producer
}

func (h *CustomerHTTP) Upsert(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.upsert")

	var req transport.IdentityPayload
	if err := c.Bind(&req); err != nil {
		l.Warn("upsert_customer_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Svc.RegisterOrUpdate(ctx, req.ToIdentity())
	if err != nil {
		l.Warn("upsert_customer_error", "error", err)
		return httpError(err)
	}

	if err := h.Producer.PublishEvent(ctx, events.TopicCustomerEvents, customer.Username, map[string]any{
		"type":        "customer_upserted",
		"telegram_id": customer.TelegramID,
		"customer_id": customer.ID,
	}); err != nil {
		l.Warn("customer event publish failed", "error", err)
	}

	l.Info("upsert_customer_success", "telegram_id", customer.TelegramID)
	return c.JSON(http.StatusOK, customer)
}
