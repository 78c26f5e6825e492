package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/4dxrsh/ApnaMandi/internal/dal/postgres"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/money"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/price"
)

// PriceDal represents the procurement price data access layer model.
type PriceDal struct {
	Id         int64     `db:"id"`
	ProductId  int64     `db:"product_id"`
	PricePaise int64     `db:"price_paise"`
	SetAt      time.Time `db:"set_at"`
}

// ToModel converts PriceDal to the service layer ProcurementPrice model.
func (p *PriceDal) ToModel() price.ProcurementPrice {
	return price.ProcurementPrice{
		ID:         p.Id,
		ProductID:  p.ProductId,
		PricePaise: money.Paise(p.PricePaise),
		SetAt:      p.SetAt,
	}
}

type PostgresPriceRepository struct {
	conn postgres.Querier
}

func NewPostgresPriceRepository(conn postgres.Querier) *PostgresPriceRepository {
	return &PostgresPriceRepository{
		conn: conn,
	}
}

// Insert appends a new price row. Existing rows are never updated, so two
// concurrent setters both persist and the effective-price rule below
// disambiguates reads.
func (r *PostgresPriceRepository) Insert(ctx context.Context, p price.ProcurementPrice) (price.ProcurementPrice, error) {
	query, args, err := sq.Insert("procurement_prices").
		Columns("product_id", "price_paise", "set_at").
		Values(p.ProductID, int64(p.PricePaise), p.SetAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return price.ProcurementPrice{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		return price.ProcurementPrice{}, fmt.Errorf("failed to insert procurement price: %w", err)
	}

	return p, nil
}

// EffectivePrices returns the latest price row per product: greatest set_at,
// ties broken by greatest id. Products with no price row are absent.
func (r *PostgresPriceRepository) EffectivePrices(ctx context.Context) ([]price.ProcurementPrice, error) {
	query, args, err := sq.Select("DISTINCT ON (product_id) id", "product_id", "price_paise", "set_at").
		From("procurement_prices").
		OrderBy("product_id", "set_at DESC", "id DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query effective prices: %w", err)
	}
	defer rows.Close()

	var result []price.ProcurementPrice
	for rows.Next() {
		var dal PriceDal
		if err := rows.Scan(&dal.Id, &dal.ProductId, &dal.PricePaise, &dal.SetAt); err != nil {
			return nil, fmt.Errorf("failed to scan procurement price: %w", err)
		}
		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
