package partnersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/idelivery"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorder"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorderitem"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/ioutboxrepo"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iprice"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iproduct"
	"github.com/4dxrsh/ApnaMandi/internal/dal/postgres"
	orderrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/order/postgres"
	productrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/product/postgres"
	"github.com/4dxrsh/ApnaMandi/internal/dal/uow"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/delivery"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/event"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/outbox"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/price"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/procurement"
	"github.com/4dxrsh/ApnaMandi/internal/service/services/ordersvc"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// EarningsReport summarizes partner earnings: the flat convenience fee per
// delivered order, independent of order contents. No per-partner
// attribution exists; callers passing a partner id get the same totals.
type EarningsReport struct {
	TotalDeliveries    int64
	TotalEarningsPaise money.Paise
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorder.IOrderRepository
	OrderItemRepository() iorderitem.IOrderItemRepository
	ProductRepository() iproduct.IProductRepository
	PriceRepository() iprice.IPriceRepository
	DeliveryRepository() idelivery.IDeliveryRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// PartnerService is the partner-facing service for daily procurement
// pricing and delivery fulfilment.
type PartnerService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
}

// option is a function that configures the PartnerService.
type option func(*PartnerService)

// MustNewPartnerService creates a new PartnerService.
func MustNewPartnerService(opts ...option) *PartnerService {
	s := &PartnerService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the PartnerService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *PartnerService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// SetPrice appends a new procurement price row for the product. Earlier
// rows stay untouched; orders placed before this call keep their snapshots.
func (s *PartnerService) SetPrice(ctx context.Context, productID int64, paise money.Paise) (*price.ProcurementPrice, error) {
	work := s.newUOW()

	if _, err := work.ProductRepository().GetByID(ctx, productID); err != nil {
		if errors.Is(err, productrepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	inserted, err := work.PriceRepository().Insert(ctx, price.ProcurementPrice{
		ProductID:  productID,
		PricePaise: paise,
		SetAt:      time.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &inserted, nil
}

// ProcurementList aggregates outstanding demand per product across all
// orders still in PLACED status. Products with zero placed demand are
// omitted; output order is unspecified.
func (s *PartnerService) ProcurementList(ctx context.Context) ([]procurement.Line, error) {
	work := s.newUOW()

	rows, err := work.OrderItemRepository().QueryPlacedDemand(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[int64]*procurement.Line, len(rows))
	for _, row := range rows {
		line, ok := byProduct[row.ProductID]
		if !ok {
			line = &procurement.Line{
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				Unit:        row.Unit,
			}
			byProduct[row.ProductID] = line
		}
		line.TotalQuantity += row.Quantity
	}

	result := make([]procurement.Line, 0, len(byProduct))
	for _, line := range byProduct {
		result = append(result, *line)
	}

	return result, nil
}

// Earnings reports delivered-order count and the flat fee earned per
// delivered order.
func (s *PartnerService) Earnings(ctx context.Context) (*EarningsReport, error) {
	work := s.newUOW()

	deliveries, err := work.OrderRepository().CountByStatus(ctx, order.StatusDelivered)
	if err != nil {
		return nil, err
	}

	return &EarningsReport{
		TotalDeliveries:    deliveries,
		TotalEarningsPaise: ordersvc.ConvenienceFeePaise.Mul(int(deliveries)),
	}, nil
}

// MarkDelivered records a delivery row, flips the order status to
// DELIVERED, and emits an order.delivered event, all in one transaction.
// Repeated calls insert additional delivery rows; there is no idempotency
// guard.
func (s *PartnerService) MarkDelivered(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	now := time.Now()

	if err := work.OrderRepository().UpdateStatus(ctx, orderID, order.StatusDelivered, now); err != nil {
		if errors.Is(err, orderrepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	inserted, err := work.DeliveryRepository().Insert(ctx, delivery.Delivery{
		OrderID:     orderID,
		DeliveredAt: now,
	})
	if err != nil {
		return nil, err
	}

	msg, err := newOutboxMessage(event.RoutingKeyOrderDelivered, event.OrderDelivered{
		OrderID:     orderID,
		DeliveredAt: now,
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

	return &inserted, nil
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
