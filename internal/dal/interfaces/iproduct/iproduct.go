package iproduct

import (
	"context"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/product"
)

// IProductRepository is an interface for the product postgres repository.
type IProductRepository interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	List(ctx context.Context) ([]product.Product, error)
}
