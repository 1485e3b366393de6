package httpserver

import (
	"net/http"
	"strconv"

	"github.com/beggab/storechina/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	telegramID, _ := strconv.ParseInt(c.QueryParam("telegram_id"), 10, 64)

	products, err := h.Svc.Search(ctx, telegramID, query, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	products, err := h.Svc.ListProducts(ctx, limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.ProductByID(ctx, uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}
