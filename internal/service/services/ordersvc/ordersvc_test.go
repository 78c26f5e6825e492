package ordersvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorder"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorderitem"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/ioutboxrepo"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iprice"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iproduct"
	orderrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/order/postgres"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/orderitem"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/outbox"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/price"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/procurement"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/product"
)

// fakeStore is an in-memory stand-in for the DAL, shared by the fake
// repositories below.
type fakeStore struct {
	orders      map[int64]order.Order
	nextOrderID int64
	items       []orderitem.OrderItem
	nextItemID  int64
	effective   map[int64]money.Paise
	products    []product.Product
	outbox      []outbox.OutboxMessage

	begun      bool
	committed  bool
	rolledBack bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:    make(map[int64]order.Order),
		effective: make(map[int64]money.Paise),
	}
}

func (f *fakeStore) Begin(ctx context.Context) error { f.begun = true; return nil }
func (f *fakeStore) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}
func (f *fakeStore) Rollback(ctx context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

func (f *fakeStore) OrderRepository() iorder.IOrderRepository             { return iorderRepo{f} }
func (f *fakeStore) OrderItemRepository() iorderitem.IOrderItemRepository { return iitemRepo{f} }
func (f *fakeStore) ProductRepository() iproduct.IProductRepository       { return iproductRepo{f} }
func (f *fakeStore) PriceRepository() iprice.IPriceRepository             { return ipriceRepo{f} }
func (f *fakeStore) OutboxRepository() ioutboxrepo.IOutboxRepository      { return ioutboxRepoStruct{f} }

type iorderRepo struct{ s *fakeStore }

func (r iorderRepo) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	r.s.nextOrderID++
	o.ID = r.s.nextOrderID
	r.s.orders[o.ID] = o
	return o, nil
}

func (r iorderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, orderrepo.ErrOrderNotFound
	}
	return &o, nil
}

func (r iorderRepo) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.s.orders {
		for _, uid := range filter.UserIds {
			if o.UserID == uid {
				result = append(result, o)
			}
		}
	}
	return result, nil
}

func (r iorderRepo) UpdateStatus(ctx context.Context, id int64, status order.Status, updatedAt time.Time) error {
	o, ok := r.s.orders[id]
	if !ok {
		return orderrepo.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.s.orders[id] = o
	return nil
}

func (r iorderRepo) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	var n int64
	for _, o := range r.s.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type iitemRepo struct{ s *fakeStore }

func (r iitemRepo) BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	result := make([]orderitem.OrderItem, 0, len(items))
	for _, item := range items {
		r.s.nextItemID++
		item.ID = r.s.nextItemID
		r.s.items = append(r.s.items, item)
		result = append(result, item)
	}
	return result, nil
}

func (r iitemRepo) Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for _, item := range r.s.items {
		for _, oid := range filter.OrderIds {
			if item.OrderID == oid {
				result = append(result, item)
			}
		}
	}
	return result, nil
}

func (r iitemRepo) QueryPlacedDemand(ctx context.Context) ([]procurement.DemandRow, error) {
	return nil, nil
}

type iproductRepo struct{ s *fakeStore }

func (r iproductRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.New("product not found")
}

func (r iproductRepo) List(ctx context.Context) ([]product.Product, error) {
	return r.s.products, nil
}

type ipriceRepo struct{ s *fakeStore }

func (r ipriceRepo) Insert(ctx context.Context, p price.ProcurementPrice) (price.ProcurementPrice, error) {
	r.s.effective[p.ProductID] = p.PricePaise
	return p, nil
}

func (r ipriceRepo) EffectivePrices(ctx context.Context) ([]price.ProcurementPrice, error) {
	var result []price.ProcurementPrice
	for productID, paise := range r.s.effective {
		result = append(result, price.ProcurementPrice{ProductID: productID, PricePaise: paise})
	}
	return result, nil
}

type ioutboxRepoStruct struct{ s *fakeStore }

func (r ioutboxRepoStruct) Insert(ctx context.Context, msg outbox.OutboxMessage) error {
	r.s.outbox = append(r.s.outbox, msg)
	return nil
}

func (r ioutboxRepoStruct) GetPendingMessages(ctx context.Context, limit int) ([]outbox.OutboxMessage, error) {
	return r.s.outbox, nil
}

func (r ioutboxRepoStruct) Delete(ctx context.Context, id int64) error { return nil }

func (r ioutboxRepoStruct) UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	return nil
}

func newService(store *fakeStore) *OrderService {
	return &OrderService{newUOW: func() unitOfWork { return store }}
}

func TestPlaceOrderComputesTotal(t *testing.T) {
	store := newFakeStore()
	store.effective[1] = 1000 // product A: ₹10.00/kg
	// product B has no price set

	svc := newService(store)

	created, err := svc.PlaceOrder(context.Background(), 7, []PlaceOrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// fee 40.00 + 2x10.00 + 3x0 = 60.00
	if created.TotalPaise != 6000 {
		t.Errorf("total = %s, want 60.00", created.TotalPaise)
	}
	if created.Status != order.StatusPlaced {
		t.Errorf("status = %s, want PLACED", created.Status)
	}
	if created.UserID != 7 {
		t.Errorf("userId = %d, want 7", created.UserID)
	}
	if len(created.OrderItems) != 2 {
		t.Fatalf("got %d items, want 2", len(created.OrderItems))
	}
	if got := created.OrderItems[0].Subtotal(); got != 2000 {
		t.Errorf("item A subtotal = %s, want 20.00", got)
	}
	if got := created.OrderItems[1].Subtotal(); got != 0 {
		t.Errorf("unpriced item subtotal = %s, want 0.00", got)
	}
	for _, item := range created.OrderItems {
		if item.OrderID != created.ID {
			t.Errorf("item orderId = %d, want %d", item.OrderID, created.ID)
		}
	}
	if !store.committed {
		t.Error("transaction was not committed")
	}
	if len(store.outbox) != 1 || store.outbox[0].RoutingKey != "order.placed" {
		t.Errorf("expected one order.placed outbox event, got %+v", store.outbox)
	}
}

func TestPlaceOrderSnapshotsPriceAtOrderTime(t *testing.T) {
	store := newFakeStore()
	store.effective[1] = 1000
	svc := newService(store)

	created, err := svc.PlaceOrder(context.Background(), 7, []PlaceOrderItem{{ProductID: 1, Quantity: 1}})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// A later price change must not touch the persisted snapshot.
	store.effective[1] = 9999

	got, err := svc.GetOrder(context.Background(), 7, created.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.OrderItems[0].PricePaise != 1000 {
		t.Errorf("snapshot price = %s, want 10.00", got.OrderItems[0].PricePaise)
	}
	if got.TotalPaise != 5000 {
		t.Errorf("total = %s, want 50.00", got.TotalPaise)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	svc := newService(newFakeStore())

	if _, err := svc.PlaceOrder(context.Background(), 7, nil); !errors.Is(err, ErrEmptyOrder) {
		t.Errorf("empty order: got %v, want ErrEmptyOrder", err)
	}

	_, err := svc.PlaceOrder(context.Background(), 7, []PlaceOrderItem{{ProductID: 1, Quantity: 0}})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}
}

func TestPlaceOrderFeeOnly(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	created, err := svc.PlaceOrder(context.Background(), 7, []PlaceOrderItem{{ProductID: 42, Quantity: 5}})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if created.TotalPaise != ConvenienceFeePaise {
		t.Errorf("total = %s, want 40.00 (fee only)", created.TotalPaise)
	}
}

func TestGetOrderScopedToOwner(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	created, err := svc.PlaceOrder(context.Background(), 7, []PlaceOrderItem{{ProductID: 1, Quantity: 1}})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if _, err := svc.GetOrder(context.Background(), 8, created.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("other user's order: got %v, want ErrOrderNotFound", err)
	}
	if _, err := svc.GetOrder(context.Background(), 7, 999); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("missing order: got %v, want ErrOrderNotFound", err)
	}
}

func TestUpdateStatusIsUnguarded(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	created, err := svc.PlaceOrder(context.Background(), 7, []PlaceOrderItem{{ProductID: 1, Quantity: 1}})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// Skipping ahead and moving backwards are both accepted.
	if err := svc.UpdateStatus(context.Background(), created.ID, order.StatusDelivered); err != nil {
		t.Fatalf("PLACED -> DELIVERED: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), created.ID, order.StatusPlaced); err != nil {
		t.Fatalf("DELIVERED -> PLACED: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), 999, order.StatusProcuring); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("missing order: got %v, want ErrOrderNotFound", err)
	}

	var statusEvents int
	for _, msg := range store.outbox {
		if msg.RoutingKey == "order.status_changed" {
			statusEvents++
		}
	}
	if statusEvents != 2 {
		t.Errorf("got %d order.status_changed events, want 2", statusEvents)
	}
}

func TestListProducts(t *testing.T) {
	store := newFakeStore()
	store.products = []product.Product{
		{ID: 1, Name: "Onion", Unit: "kg"},
		{ID: 2, Name: "Milk", Unit: "ltr"},
	}
	store.effective[1] = 1850
	svc := newService(store)

	got, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d products, want 2", len(got))
	}
	if !got[0].HasPrice || got[0].PricePaise != 1850 {
		t.Errorf("priced product: %+v", got[0])
	}
	if got[1].HasPrice {
		t.Errorf("unpriced product reported a price: %+v", got[1])
	}
}
