package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/4dxrsh/ApnaMandi/internal/dal/postgres"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/delivery"
)

type PostgresDeliveryRepository struct {
	conn postgres.Querier
}

func NewPostgresDeliveryRepository(conn postgres.Querier) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{
		conn: conn,
	}
}

// Insert records a delivery and returns it with its generated id.
func (r *PostgresDeliveryRepository) Insert(ctx context.Context, d delivery.Delivery) (delivery.Delivery, error) {
	query, args, err := sq.Insert("deliveries").
		Columns("order_id", "delivered_at").
		Values(d.OrderID, d.DeliveredAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return delivery.Delivery{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&d.ID); err != nil {
		return delivery.Delivery{}, fmt.Errorf("failed to insert delivery: %w", err)
	}

	return d, nil
}
