package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/4dxrsh/ApnaMandi/internal/dal/postgres"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/orderitem"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/procurement"
)

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id         int64     `db:"id"`
	OrderId    int64     `db:"order_id"`
	ProductId  int64     `db:"product_id"`
	Quantity   int       `db:"quantity"`
	PricePaise int64     `db:"price_paise"`
	CreatedAt  time.Time `db:"created_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (i *OrderItemDal) ToModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ID:         i.Id,
		OrderID:    i.OrderId,
		ProductID:  i.ProductId,
		Quantity:   i.Quantity,
		PricePaise: money.Paise(i.PricePaise),
		CreatedAt:  i.CreatedAt,
	}
}

type PostgresOrderItemRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderItemRepository(conn postgres.Querier) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
	}
}

// BulkInsert inserts the items of one order and returns them with ids.
func (r *PostgresOrderItemRepository) BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := sq.Insert("order_items").
		Columns("order_id", "product_id", "quantity", "price_paise", "created_at").
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar)

	for _, item := range items {
		builder = builder.Values(item.OrderID, item.ProductID, item.Quantity, int64(item.PricePaise), item.CreatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, 0, len(items))
	i := 0
	for rows.Next() {
		item := items[i]
		if err := rows.Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("failed to scan order item id: %w", err)
		}
		result = append(result, item)
		i++
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	builder := sq.Select("id", "order_id", "product_id", "quantity", "price_paise", "created_at").
		From("order_items").
		OrderBy("order_id", "id").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.OrderIds) > 0 {
		builder = builder.Where(sq.Eq{"order_id": filter.OrderIds})
	}
	if len(filter.ProductIds) > 0 {
		builder = builder.Where(sq.Eq{"product_id": filter.ProductIds})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.PricePaise,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryPlacedDemand returns order items of orders still in PLACED status,
// joined to product name and unit. Aggregation happens in the service layer.
func (r *PostgresOrderItemRepository) QueryPlacedDemand(ctx context.Context) ([]procurement.DemandRow, error) {
	query, args, err := sq.Select("oi.product_id", "p.name", "p.unit", "oi.quantity").
		From("order_items oi").
		Join("orders o ON o.id = oi.order_id").
		Join("products p ON p.id = oi.product_id").
		Where(sq.Eq{"o.status": order.StatusPlaced.String()}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build demand query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query placed demand: %w", err)
	}
	defer rows.Close()

	var result []procurement.DemandRow
	for rows.Next() {
		var row procurement.DemandRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Unit, &row.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan demand row: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
