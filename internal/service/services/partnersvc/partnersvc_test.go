package partnersvc

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/idelivery"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorder"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorderitem"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/ioutboxrepo"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iprice"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iproduct"
	orderrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/order/postgres"
	productrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/product/postgres"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/delivery"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/orderitem"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/outbox"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/price"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/procurement"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/product"
)

// fakeStore is an in-memory stand-in for the DAL.
type fakeStore struct {
	orders     map[int64]order.Order
	demand     []procurement.DemandRow
	products   []product.Product
	prices     []price.ProcurementPrice
	deliveries []delivery.Delivery
	outbox     []outbox.OutboxMessage

	committed bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: make(map[int64]order.Order)}
}

func (f *fakeStore) Begin(ctx context.Context) error    { return nil }
func (f *fakeStore) Commit(ctx context.Context) error   { f.committed = true; return nil }
func (f *fakeStore) Rollback(ctx context.Context) error { return nil }

func (f *fakeStore) OrderRepository() iorder.IOrderRepository             { return orderFake{f} }
func (f *fakeStore) OrderItemRepository() iorderitem.IOrderItemRepository { return itemFake{f} }
func (f *fakeStore) ProductRepository() iproduct.IProductRepository       { return productFake{f} }
func (f *fakeStore) PriceRepository() iprice.IPriceRepository             { return priceFake{f} }
func (f *fakeStore) DeliveryRepository() idelivery.IDeliveryRepository    { return deliveryFake{f} }
func (f *fakeStore) OutboxRepository() ioutboxrepo.IOutboxRepository      { return outboxFake{f} }

type orderFake struct{ s *fakeStore }

func (r orderFake) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	o.ID = int64(len(r.s.orders) + 1)
	r.s.orders[o.ID] = o
	return o, nil
}

func (r orderFake) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, orderrepo.ErrOrderNotFound
	}
	return &o, nil
}

func (r orderFake) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	return nil, nil
}

func (r orderFake) UpdateStatus(ctx context.Context, id int64, status order.Status, updatedAt time.Time) error {
	o, ok := r.s.orders[id]
	if !ok {
		return orderrepo.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.s.orders[id] = o
	return nil
}

func (r orderFake) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	var n int64
	for _, o := range r.s.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type itemFake struct{ s *fakeStore }

func (r itemFake) BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	return items, nil
}

func (r itemFake) Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	return nil, nil
}

func (r itemFake) QueryPlacedDemand(ctx context.Context) ([]procurement.DemandRow, error) {
	return r.s.demand, nil
}

type productFake struct{ s *fakeStore }

func (r productFake) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, productrepo.ErrProductNotFound
}

func (r productFake) List(ctx context.Context) ([]product.Product, error) {
	return r.s.products, nil
}

type priceFake struct{ s *fakeStore }

func (r priceFake) Insert(ctx context.Context, p price.ProcurementPrice) (price.ProcurementPrice, error) {
	p.ID = int64(len(r.s.prices) + 1)
	r.s.prices = append(r.s.prices, p)
	return p, nil
}

func (r priceFake) EffectivePrices(ctx context.Context) ([]price.ProcurementPrice, error) {
	return r.s.prices, nil
}

type deliveryFake struct{ s *fakeStore }

func (r deliveryFake) Insert(ctx context.Context, d delivery.Delivery) (delivery.Delivery, error) {
	d.ID = int64(len(r.s.deliveries) + 1)
	r.s.deliveries = append(r.s.deliveries, d)
	return d, nil
}

type outboxFake struct{ s *fakeStore }

func (r outboxFake) Insert(ctx context.Context, msg outbox.OutboxMessage) error {
	r.s.outbox = append(r.s.outbox, msg)
	return nil
}

func (r outboxFake) GetPendingMessages(ctx context.Context, limit int) ([]outbox.OutboxMessage, error) {
	return r.s.outbox, nil
}

func (r outboxFake) Delete(ctx context.Context, id int64) error { return nil }

func (r outboxFake) UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	return nil
}

func newService(store *fakeStore) *PartnerService {
	return &PartnerService{newUOW: func() unitOfWork { return store }}
}

func TestProcurementListAggregatesByProduct(t *testing.T) {
	store := newFakeStore()
	// Two PLACED orders demand product 1 with quantities 2 and 5.
	store.demand = []procurement.DemandRow{
		{ProductID: 1, ProductName: "Onion", Unit: "kg", Quantity: 2},
		{ProductID: 2, ProductName: "Milk", Unit: "ltr", Quantity: 1},
		{ProductID: 1, ProductName: "Onion", Unit: "kg", Quantity: 5},
	}
	svc := newService(store)

	lines, err := svc.ProcurementList(context.Background())
	if err != nil {
		t.Fatalf("ProcurementList: %v", err)
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	want := []procurement.Line{
		{ProductID: 1, ProductName: "Onion", TotalQuantity: 7, Unit: "kg"},
		{ProductID: 2, ProductName: "Milk", TotalQuantity: 1, Unit: "ltr"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}
}

func TestProcurementListEmptyDemand(t *testing.T) {
	svc := newService(newFakeStore())

	lines, err := svc.ProcurementList(context.Background())
	if err != nil {
		t.Fatalf("ProcurementList: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines for zero demand, got %+v", lines)
	}
}

func TestEarnings(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	report, err := svc.Earnings(context.Background())
	if err != nil {
		t.Fatalf("Earnings: %v", err)
	}
	if report.TotalDeliveries != 0 || report.TotalEarningsPaise != 0 {
		t.Errorf("empty earnings = %+v, want zeroes", report)
	}

	for i := 0; i < 3; i++ {
		store.orders[int64(i+1)] = order.Order{ID: int64(i + 1), Status: order.StatusDelivered}
	}
	store.orders[10] = order.Order{ID: 10, Status: order.StatusPlaced}

	report, err = svc.Earnings(context.Background())
	if err != nil {
		t.Fatalf("Earnings: %v", err)
	}
	if report.TotalDeliveries != 3 {
		t.Errorf("totalDeliveries = %d, want 3", report.TotalDeliveries)
	}
	// 3 x ₹40 = ₹120
	if got := report.TotalEarningsPaise.String(); got != "120.00" {
		t.Errorf("totalEarnings = %s, want 120.00", got)
	}
}

func TestMarkDelivered(t *testing.T) {
	store := newFakeStore()
	store.orders[1] = order.Order{ID: 1, UserID: 7, Status: order.StatusOnTheWay}
	svc := newService(store)

	d, err := svc.MarkDelivered(context.Background(), 1)
	if err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}
	if d.OrderID != 1 || d.DeliveredAt.IsZero() {
		t.Errorf("delivery = %+v", d)
	}
	if store.orders[1].Status != order.StatusDelivered {
		t.Errorf("order status = %s, want DELIVERED", store.orders[1].Status)
	}
	if len(store.outbox) != 1 || store.outbox[0].RoutingKey != "order.delivered" {
		t.Errorf("expected one order.delivered event, got %+v", store.outbox)
	}
	if !store.committed {
		t.Error("transaction was not committed")
	}

	if _, err := svc.MarkDelivered(context.Background(), 99); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("missing order: got %v, want ErrOrderNotFound", err)
	}
}

func TestSetPrice(t *testing.T) {
	store := newFakeStore()
	store.products = []product.Product{{ID: 1, Name: "Tomato", Unit: "kg"}}
	svc := newService(store)

	if _, err := svc.SetPrice(context.Background(), 99, 1000); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("unknown product: got %v, want ErrProductNotFound", err)
	}

	first, err := svc.SetPrice(context.Background(), 1, 1200)
	if err != nil {
		t.Fatalf("SetPrice: %v", err)
	}
	if first.SetAt.IsZero() {
		t.Error("setAt was not stamped")
	}

	// A second call appends; it never rewrites the first row.
	if _, err := svc.SetPrice(context.Background(), 1, 1500); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}
	if len(store.prices) != 2 {
		t.Fatalf("got %d price rows, want 2", len(store.prices))
	}
	if store.prices[0].PricePaise != 1200 || store.prices[1].PricePaise != 1500 {
		t.Errorf("price rows = %+v", store.prices)
	}
}
