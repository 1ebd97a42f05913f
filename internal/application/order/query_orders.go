package order

import (
	"context"
	"time"

	"github.com/xiebiao/ecommerce/internal/domain/order"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// QueryOrdersUseCase 订单查询用例(详情、列表)
type QueryOrdersUseCase struct {
	orderRepo order.Repository
}

// NewQueryOrdersUseCase 创建订单查询用例
func NewQueryOrdersUseCase(orderRepo order.Repository) *QueryOrdersUseCase {
	return &QueryOrdersUseCase{orderRepo: orderRepo}
}

// OrderView 订单视图DTO
type OrderView struct {
	ID            uint            `json:"id"`
	OrderNo       string          `json:"order_no"`
	UserID        uint            `json:"user_id"`
	Items         []OrderItemView `json:"items"`
	TotalAmount   int64           `json:"total_amount"`
	ShippingFee   int64           `json:"shipping_fee"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	PaymentMethod string          `json:"payment_method"`
	OrderedAt     string          `json:"ordered_at"`
}

// OrderItemView 订单明细视图DTO
type OrderItemView struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
	Subtotal  int64 `json:"subtotal"`
}

// GetByID 查询订单详情(归属校验:买家只能看自己的订单)
func (uc *QueryOrdersUseCase) GetByID(ctx context.Context, orderID, userID uint) (*OrderView, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, apperrors.ErrForbidden
	}
	return toOrderView(o), nil
}

// ListByUser 查询用户订单列表(分页)
func (uc *QueryOrdersUseCase) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*OrderView, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toOrderViews(orders), total, nil
}

// ListByStatus 按履约状态查询订单(运营侧)
func (uc *QueryOrdersUseCase) ListByStatus(ctx context.Context, status order.Status) ([]*OrderView, error) {
	orders, err := uc.orderRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return toOrderViews(orders), nil
}

// ListByDateRange 按下单时间区间查询订单(运营侧报表)
func (uc *QueryOrdersUseCase) ListByDateRange(ctx context.Context, start, end time.Time) ([]*OrderView, error) {
	if end.Before(start) {
		return nil, apperrors.ErrInvalidParams
	}
	orders, err := uc.orderRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toOrderViews(orders), nil
}

func toOrderView(o *order.Order) *OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}
	return &OrderView{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		UserID:        o.UserID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		ShippingFee:   o.ShippingFee,
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		PaymentMethod: o.PaymentMethod,
		OrderedAt:     o.OrderedAt.Format("2006-01-02 15:04:05"),
	}
}

func toOrderViews(orders []*order.Order) []*OrderView {
	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o)
	}
	return views
}
