package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/beggab/storechina/internal/cache"
	"github.com/beggab/storechina/internal/events"
	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/middleware/auth"
	"github.com/beggab/storechina/internal/repo"
	"github.com/beggab/storechina/internal/search"
	"github.com/beggab/storechina/internal/service"
	"github.com/labstack/echo/v4"
)

// Deps bundles everything the HTTP surface needs. Producer and Cache may be
// nil when the corresponding backend is not configured.
type Deps struct {
	Logger   *slog.Logger
	Repo     *repo.GormRepo
	Producer *events.Producer
	Cache    cache.Cache
	Search   search.Provider

	AdminPasswordHash string
	JWTSecret         []byte
}

// Register wires all routes onto e.
func Register(e *echo.Echo, d Deps) {
	e.Use(requestLogger(d.Logger))

	customers := &service.CustomerService{Repo: d.Repo}
	carts := &service.CartService{Repo: d.Repo}
	orders := &service.OrderService{Repo: d.Repo}
	reports := &service.ReportService{Repo: d.Repo}
	catalog := &service.CatalogService{
		Repo:     d.Repo,
		Provider: d.Search,
		Fallback: &search.Mock{},
		Cache:    d.Cache,
	}

	customerHTTP := &CustomerHTTP{Svc: customers, Producer: d.Producer}
	cartHTTP := &CartHTTP{Svc: carts, Producer: d.Producer}
	orderHTTP := &OrderHTTP{Svc: orders, Producer: d.Producer}
	catalogHTTP := &CatalogHTTP{Svc: catalog}
	adminHTTP := &AdminHTTP{
		Customers:    customers,
		Orders:       orders,
		Reports:      reports,
		Repo:         d.Repo,
		PasswordHash: d.AdminPasswordHash,
		JWTSecret:    d.JWTSecret,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")

	api.POST("/customers", customerHTTP.Upsert)

	api.GET("/cart", cartHTTP.GetCart)
	api.POST("/cart/items", cartHTTP.AddToCart)
	api.DELETE("/cart/items/:id", cartHTTP.RemoveFromCart)
	api.DELETE("/cart", cartHTTP.ClearCart)

	api.POST("/orders", orderHTTP.PlaceOrder)
	api.POST("/orders/checkout", orderHTTP.Checkout)
	api.GET("/orders", orderHTTP.History)
	api.GET("/orders/:id", orderHTTP.GetOrder)

	api.GET("/products/search", catalogHTTP.Search)
	api.GET("/products", catalogHTTP.ListProducts)
	api.GET("/products/:id", catalogHTTP.GetProduct)

	api.POST("/admin/login", adminHTTP.Login)

	admin := api.Group("/admin", auth.AdminOnly(d.JWTSecret))
	admin.GET("/orders", adminHTTP.RecentOrders)
	admin.GET("/stats", adminHTTP.Stats)
	admin.PATCH("/orders/:id/status", adminHTTP.UpdateOrderStatus)
	admin.DELETE("/customers/:telegram_id", adminHTTP.DeleteCustomer)
	admin.POST("/rates", adminHTTP.RecordRate)
}

// requestLogger makes the application logger reachable from every handler
// via logging.FromContext.
func requestLogger(l *slog.Logger) echo.MiddlewareFunc {
	if l == nil {
		l = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := logging.IntoContext(req.Context(), l.With(
				"method", req.Method,
				"path", req.URL.Path,
			))
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
