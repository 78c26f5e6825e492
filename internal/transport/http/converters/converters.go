package converters

import (
	"time"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/delivery"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/price"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/product"
	"github.com/4dxrsh/ApnaMandi/internal/service/services/partnersvc"
)

// Money crosses the API boundary as decimal rupee strings; internally it is
// integer paise.

type OrderItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Subtotal  string `json:"subtotal"`
}

type OrderResponse struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"userId"`
	Status    string              `json:"status"`
	Total     string              `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Items     []OrderItemResponse `json:"items"`
}

// OrderToResponse converts a service layer Order to its API representation.
func OrderToResponse(o order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.PricePaise.String(),
			Subtotal:  item.Subtotal().String(),
		})
	}

	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status.String(),
		Total:     o.TotalPaise.String(),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Items:     items,
	}
}

// OrdersToResponse converts a list of orders.
func OrdersToResponse(orders []order.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToResponse(o))
	}
	return result
}

type ProductResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
	// Price is null when no procurement price has been set yet.
	Price *string `json:"price"`
}

// ProductsToResponse converts catalog entries with their effective prices.
func ProductsToResponse(products []product.WithPrice) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp := ProductResponse{
			ID:   p.ID,
			Name: p.Name,
			Unit: p.Unit,
		}
		if p.HasPrice {
			s := p.PricePaise.String()
			resp.Price = &s
		}
		result = append(result, resp)
	}
	return result
}

type PriceResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Price     string    `json:"price"`
	SetAt     time.Time `json:"setAt"`
}

// PriceToResponse converts an appended procurement price row.
func PriceToResponse(p price.ProcurementPrice) PriceResponse {
	return PriceResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Price:     p.PricePaise.String(),
		SetAt:     p.SetAt,
	}
}

type EarningsResponse struct {
	TotalDeliveries int64  `json:"totalDeliveries"`
	TotalEarnings   string `json:"totalEarnings"`
}

// EarningsToResponse converts the partner earnings report.
func EarningsToResponse(report partnersvc.EarningsReport) EarningsResponse {
	return EarningsResponse{
		TotalDeliveries: report.TotalDeliveries,
		TotalEarnings:   report.TotalEarningsPaise.String(),
	}
}

type DeliveryResponse struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"orderId"`
	DeliveredAt time.Time `json:"deliveredAt"`
}

// DeliveryToResponse converts a recorded delivery.
func DeliveryToResponse(d delivery.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:          d.ID,
		OrderID:     d.OrderID,
		DeliveredAt: d.DeliveredAt,
	}
}
