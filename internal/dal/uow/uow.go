package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/idelivery"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorder"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iorderitem"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/ioutboxrepo"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iprice"
	"github.com/4dxrsh/ApnaMandi/internal/dal/interfaces/iproduct"
	"github.com/4dxrsh/ApnaMandi/internal/dal/postgres"
	deliveryrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/delivery/postgres"
	orderrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/outbox/postgres"
	pricerepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/price/postgres"
	productrepo "github.com/4dxrsh/ApnaMandi/internal/dal/repositories/product/postgres"
)

// unitOfWork scopes repositories to one connection pool or, after Begin,
// to one transaction.
type unitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx
	conn   postgres.Querier
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		client: client,
		conn:   client.Pool(),
	}
}

func (u *unitOfWork) OrderRepository() iorder.IOrderRepository {
	return orderrepo.NewPostgresOrderRepository(u.conn)
}

func (u *unitOfWork) OrderItemRepository() iorderitem.IOrderItemRepository {
	return orderitemrepo.NewPostgresOrderItemRepository(u.conn)
}

func (u *unitOfWork) ProductRepository() iproduct.IProductRepository {
	return productrepo.NewPostgresProductRepository(u.conn)
}

func (u *unitOfWork) PriceRepository() iprice.IPriceRepository {
	return pricerepo.NewPostgresPriceRepository(u.conn)
}

func (u *unitOfWork) DeliveryRepository() idelivery.IDeliveryRepository {
	return deliveryrepo.NewPostgresDeliveryRepository(u.conn)
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return outboxrepo.NewPostgresOutboxRepository(u.conn)
}

// Begin starts a transaction; repositories obtained afterwards run inside it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.conn = tx

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

// Rollback is a no-op after Commit; pgx returns ErrTxClosed which is
// swallowed so it can run in a defer.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return err
	}
	return nil
}
