package createorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/4dxrsh/ApnaMandi/internal/service/models/order"
	"github.com/4dxrsh/ApnaMandi/internal/service/models/orderitem"
	"github.com/4dxrsh/ApnaMandi/internal/service/services/ordersvc"
	"github.com/4dxrsh/ApnaMandi/internal/transport/http/middleware/auth"
)

const testSecret = "test-secret"

type fakeService struct {
	gotUserID int64
	gotItems  []ordersvc.PlaceOrderItem
	result    *order.Order
	err       error
}

func (f *fakeService) PlaceOrder(_ context.Context, userID int64, items []ordersvc.PlaceOrderItem) (*order.Order, error) {
	f.gotUserID = userID
	f.gotItems = items
	return f.result, f.err
}

// signToken returns a signed JWT with the claims the middleware reads.
func signToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"role":   role,
	})
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newHandler(svc *fakeService) http.Handler {
	return auth.NewAuthMiddleware([]byte(testSecret))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		PlaceOrder(w, r, svc)
	}))
}

func TestPlaceOrderHandler(t *testing.T) {
	now := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	svc := &fakeService{
		result: &order.Order{
			ID:         12,
			UserID:     7,
			Status:     order.StatusPlaced,
			TotalPaise: 6000,
			CreatedAt:  now,
			UpdatedAt:  now,
			OrderItems: []orderitem.OrderItem{
				{ID: 1, OrderID: 12, ProductID: 3, Quantity: 2, PricePaise: 1000, CreatedAt: now},
			},
		},
	}
	handler := newHandler(svc)

	body := `{"items":[{"productId":3,"quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signToken(t, 7, "vendor"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	if svc.gotUserID != 7 {
		t.Errorf("userID = %d, want 7", svc.gotUserID)
	}
	if len(svc.gotItems) != 1 || svc.gotItems[0].ProductID != 3 || svc.gotItems[0].Quantity != 2 {
		t.Errorf("items = %+v", svc.gotItems)
	}

	var resp struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Total  string `json:"total"`
		Items  []struct {
			ProductID int64  `json:"productId"`
			Subtotal  string `json:"subtotal"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 12 || resp.Status != "PLACED" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Total != "60.00" {
		t.Errorf("total = %q, want %q", resp.Total, "60.00")
	}
	if len(resp.Items) != 1 || resp.Items[0].Subtotal != "20.00" {
		t.Errorf("items = %+v", resp.Items)
	}
}

func TestPlaceOrderHandlerRejectsEmptyOrder(t *testing.T) {
	svc := &fakeService{err: ordersvc.ErrEmptyOrder}
	handler := newHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Authorization", "Bearer "+signToken(t, 7, "vendor"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlaceOrderHandlerRequiresAuth(t *testing.T) {
	svc := &fakeService{}
	handler := newHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"items":[{"productId":1,"quantity":1}]}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if svc.gotItems != nil {
		t.Errorf("service was called for unauthenticated request")
	}
}
