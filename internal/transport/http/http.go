package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/delivery"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/price"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/procurement"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/product"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/user"
	"github.com/4dxrsh/ApnaMandi/internal/service/services/ordersvc"
	"github.com/4dxrsh/ApnaMandi/internal/service/services/partnersvc"
	createorder "github.com/4dxrsh/ApnaMandi/internal/transport/http/create_order"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/earnings"
	getorder "github.com/4dxrsh/ApnaMandi/internal/transport/http/get_order"
	listorders "github.com/4dxrsh/ApnaMandi/internal/transport/http/list_orders"
	listproducts "github.com/4dxrsh/ApnaMandi/internal/transport/http/list_products"
	markdelivered "github.com/4dxrsh/ApnaMandi/internal/transport/http/mark_delivered"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/middleware/auth"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/middleware/metrics"
	procurementlist "github.com/4dxrsh/ApnaMandi/internal/transport/http/procurement_list"
	setprice "github.com/4dxrsh/ApnaMandi/internal/transport/http/set_price"
	updatestatus "github.com/4dxrsh/ApnaMandi/internal/transport/http/update_status"
	"github.com/4dxrsh/ApnaMandi/pkg/http/middleware/trace"
	"github.com/4dxrsh/ApnaMandi/pkg/logger"
)

type orderService interface {
	PlaceOrder(ctx context.Context, userID int64, items []ordersvc.PlaceOrderItem) (*order.Order, error)
	GetOrders(ctx context.Context, userID int64) ([]order.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*order.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status order.Status) error
	ListProducts(ctx context.Context) ([]product.WithPrice, error)
}

type partnerService interface {
	SetPrice(ctx context.Context, productID int64, paise money.Paise) (*price.ProcurementPrice, error)
	ProcurementList(ctx context.Context) ([]procurement.Line, error)
	Earnings(ctx context.Context) (*partnersvc.EarningsReport, error)
	MarkDelivered(ctx context.Context, orderID int64) (*delivery.Delivery, error)
}

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	orderSvc   orderService
	partnerSvc partnerService
}

func NewHTTPTransport(orderSvc orderService, partnerSvc partnerService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:     server,
		router:     router,
		orderSvc:   orderSvc,
		partnerSvc: partnerSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Handle("/metrics", promhttp.Handler())
	h.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	authMiddleware := auth.NewAuthMiddleware(auth.Secret())

	h.router.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/products", h.listProducts)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.placeOrder)
			r.Get("/", h.listOrders)
			r.Get("/{id}", h.getOrder)
			r.Patch("/{id}/status", h.updateStatus)
		})

		r.Route("/partner", func(r chi.Router) {
			r.Use(auth.RequireRole(user.RolePartner))

			r.Get("/procurement-list", h.procurementList)
			r.Post("/set-price", h.setPrice)
			r.Get("/earnings", h.earnings)
			r.Post("/mark-delivered", h.markDelivered)
		})
	})
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	createorder.PlaceOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.orderSvc)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.orderSvc)
}

func (h *HTTPTransport) setPrice(w http.ResponseWriter, r *http.Request) {
	setprice.SetPrice(w, r, h.partnerSvc)
}

func (h *HTTPTransport) procurementList(w http.ResponseWriter, r *http.Request) {
	procurementlist.ProcurementList(w, r, h.partnerSvc)
}

func (h *HTTPTransport) earnings(w http.ResponseWriter, r *http.Request) {
	earnings.Earnings(w, r, h.partnerSvc)
}

func (h *HTTPTransport) markDelivered(w http.ResponseWriter, r *http.Request) {
	markdelivered.MarkDelivered(w, r, h.partnerSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(metrics.NewMetricsMiddleware())
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
