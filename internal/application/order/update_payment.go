package order

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/order"
)

// UpdatePaymentUseCase 支付状态变更用例
// 支付轴与履约轴互相独立:支付状态变化不触发任何库存副作用,
// 发货与否由运营侧基于支付状态自行决策
type UpdatePaymentUseCase struct {
	orderRepo order.Repository
}

// NewUpdatePaymentUseCase 创建支付状态变更用例
func NewUpdatePaymentUseCase(orderRepo order.Repository) *UpdatePaymentUseCase {
	return &UpdatePaymentUseCase{orderRepo: orderRepo}
}

// UpdatePaymentRequest 支付状态变更请求DTO
type UpdatePaymentRequest struct {
	OrderID uint
	Target  order.PaymentStatus
}

// UpdatePaymentResponse 支付状态变更响应DTO
type UpdatePaymentResponse struct {
	OrderID       uint   `json:"order_id"`
	OrderNo       string `json:"order_no"`
	PaymentStatus string `json:"payment_status"`
}

// Execute 执行支付状态变更
func (uc *UpdatePaymentUseCase) Execute(ctx context.Context, req UpdatePaymentRequest) (*UpdatePaymentResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if err := o.SetPaymentStatus(req.Target); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	return &UpdatePaymentResponse{
		OrderID:       o.ID,
		OrderNo:       o.OrderNo,
		PaymentStatus: o.PaymentStatus.String(),
	}, nil
}
