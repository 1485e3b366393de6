package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/beggab/storechina/internal/hash"
	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/repo"
	"github.com/beggab/storechina/internal/service"
	"github.com/beggab/storechina/internal/tokens"
	"github.com/beggab/storechina/internal/transport"
	"github.com/labstack/echo/v4"
)

const accessTokenTTL = 12 * time.Hour

type AdminHTTP struct {
	Customers *service.CustomerService
	Orders    *service.OrderService
	Reports   *service.ReportService
	Repo      *repo.GormRepo

	PasswordHash string
	JWTSecret    []byte
}

func (h *AdminHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.login")

	var req transport.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if !hash.CheckPassword(h.PasswordHash, req.Password) {
		l.Warn("admin_login_rejected")
		return echo.NewHTTPError(http.StatusUnauthorized, "wrong password")
	}

	token, err := tokens.SignAccessToken("admin", "admin", h.JWTSecret, accessTokenTTL)
	if err != nil {
		l.Error("token sign failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(&http.Cookie{
		Name:     "accessToken",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(accessTokenTTL),
		HttpOnly: true,
	})
	l.Info("admin_login_success")
	return c.JSON(http.StatusOK, transport.TokenResponse{AccessToken: token})
}

func (h *AdminHTTP) RecentOrders(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return c.JSON(http.StatusOK, h.Reports.RecentOrders(ctx, limit))
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Reports.Stats(c.Request().Context()))
}

func (h *AdminHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.order_status")

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Orders.UpdateStatus(ctx, uint(orderID), req.Status); err != nil {
		l.Warn("order_status_error", "order_id", orderID, "error", err)
		return httpError(err)
	}

	l.Info("order_status_updated", "order_id", orderID, "status", req.Status)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_customer")

	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid telegram id")
	}

	if err := h.Customers.Delete(ctx, telegramID); err != nil {
		l.Warn("delete_customer_error", "telegram_id", telegramID, "error", err)
		return httpError(err)
	}

	l.Info("customer_deleted", "telegram_id", telegramID)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) RecordRate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.record_rate")

	var req transport.RecordRateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Rate <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "rate must be positive")
	}

	if err := h.Repo.RecordRate(ctx, req.Rate, req.Source); err != nil {
		l.Error("record_rate_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("rate_recorded", "rate", req.Rate, "source", req.Source)
	return c.NoContent(http.StatusNoContent)
}
