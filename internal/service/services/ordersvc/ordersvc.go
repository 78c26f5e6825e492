package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorder"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorderitem"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/ioutboxrepo"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iprice"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iproduct"
	"github.com/4dxrsh/ApnaMandi/internal/dal/postgres"
	orderrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/order/postgres"
	"github.com/4dxrsh/ApnaMandi/internal/dal/uow"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/event"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/orderitem"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/outbox"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/product"
)

// ConvenienceFeePaise is the flat ₹40 charge added to every order and
// credited to partner earnings per delivered order.
const ConvenienceFeePaise = money.Paise(4000)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrOrderNotFound   = errors.New("order not found")
)

// PlaceOrderItem is one caller-supplied order line. Lines are not
// deduplicated by product; the caller's sequence is persisted as given.
type PlaceOrderItem struct {
	ProductID int64
	Quantity  int
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorder.IOrderRepository
	OrderItemRepository() iorderitem.IOrderItemRepository
	ProductRepository() iproduct.IProductRepository
	PriceRepository() iprice.IPriceRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// OrderService is the vendor-facing service for placing and reading orders.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// PlaceOrder creates an order for the vendor: each line is priced from the
// current effective procurement price (0 when none was ever set), the total
// is the convenience fee plus the line subtotals, and the order row, its
// item rows with price snapshots, and an order.placed outbox event are
// written in one transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, items []PlaceOrderItem) (*order.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	effective, err := work.PriceRepository().EffectivePrices(ctx)
	if err != nil {
		return nil, err
	}
	priceByProduct := make(map[int64]money.Paise, len(effective))
	for _, p := range effective {
		priceByProduct[p.ProductID] = p.PricePaise
	}

	now := time.Now()

	total := ConvenienceFeePaise
	orderItems := make([]orderitem.OrderItem, 0, len(items))
	for _, item := range items {
		// Unpriced products cost 0; no error is raised.
		snapshot := priceByProduct[item.ProductID]
		total += snapshot.Mul(item.Quantity)
		orderItems = append(orderItems, orderitem.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PricePaise: snapshot,
			CreatedAt:  now,
		})
	}

	created, err := work.OrderRepository().Insert(ctx, order.Order{
		UserID:     userID,
		Status:     order.StatusPlaced,
		TotalPaise: total,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	for i := range orderItems {
		orderItems[i].OrderID = created.ID
	}
	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, orderItems)
	if err != nil {
		return nil, err
	}
	created.OrderItems = insertedItems

	msg, err := newOutboxMessage(event.RoutingKeyOrderPlaced, event.OrderPlaced{
		OrderID:    created.ID,
		UserID:     created.UserID,
		TotalPaise: int64(created.TotalPaise),
		OccurredAt: now,
	}, now)
	if err != nil {
		return nil, err
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return &created, nil
}

// GetOrders retrieves the vendor's orders with their items, newest first.
func (s *OrderService) GetOrders(ctx context.Context, userID int64) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{
		UserIds: []int64{userID},
	})
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIds = append(orderIds, o.ID)
	}
	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: orderIds,
	})
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// GetOrder retrieves one of the vendor's orders with its items. Another
// vendor's order is reported as not found rather than forbidden.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderrepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{o.ID},
	})
	if err != nil {
		return nil, err
	}
	o.OrderItems = items

	return o, nil
}

// UpdateStatus unconditionally overwrites the order status and emits an
// order.status_changed event. Transition ordering is deliberately not
// enforced; any known status may replace any other.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status order.Status) error {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = work.Rollback(ctx) }()

	now := time.Now()

	if err := work.OrderRepository().UpdateStatus(ctx, orderID, status, now); err != nil {
		if errors.Is(err, orderrepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	msg, err := newOutboxMessage(event.RoutingKeyOrderStatusChanged, event.OrderStatusChanged{
		OrderID:    orderID,
		Status:     status,
		OccurredAt: now,
	}, now)
	if err != nil {
		return err
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return err
	}

	return work.Commit(ctx)
}

// ListProducts returns the catalog with current effective prices so the
// vendor UI can render the order form. Products without a price row are
// returned with HasPrice false.
func (s *OrderService) ListProducts(ctx context.Context) ([]product.WithPrice, error) {
	work := s.newUOW()

	products, err := work.ProductRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	effective, err := work.PriceRepository().EffectivePrices(ctx)
	if err != nil {
		return nil, err
	}
	priceByProduct := make(map[int64]money.Paise, len(effective))
	for _, p := range effective {
		priceByProduct[p.ProductID] = p.PricePaise
	}

	result := make([]product.WithPrice, 0, len(products))
	for _, p := range products {
		wp := product.WithPrice{Product: p}
		if paise, ok := priceByProduct[p.ID]; ok {
			wp.PricePaise = paise
			wp.HasPrice = true
		}
		result = append(result, wp)
	}

	return result, nil
}

// newOutboxMessage stages a JSON order event for the outbox worker.
func newOutboxMessage(routingKey string, payload any, now time.Time) (outbox.OutboxMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return outbox.OutboxMessage{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return outbox.OutboxMessage{
		QueueName:    viper.GetString("rabbitmq.orders.queue"),
		ExchangeName: viper.GetString("rabbitmq.orders.exchange"),
		RoutingKey:   routingKey,
		Payload:      body,
		ContentType:  "application/json",
		MaxRetries:   maxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}, nil
}
