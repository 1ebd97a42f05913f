package order

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/application/notification"
	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	"github.com/xiebiao/ecommerce/internal/domain/order"
	"github.com/xiebiao/ecommerce/pkg/metrics"
)

// UpdateStatusUseCase 订单状态变更用例
// 设计说明:
// 状态变更与库存副作用必须在同一事务内:
//   - 处理中→已发货: 按分配记录确认预留(在库与预留同步扣减)
//   - 处理中→已取消: 按分配记录释放预留
//   - 已取消→处理中: 重新预留(原分配已作废,重新跨仓分配并重写分配记录)
//   - 已发货→已送达: 无库存副作用
type UpdateStatusUseCase struct {
	orderRepo     order.Repository
	inventoryRepo inventory.Repository
	txManager     Transactor
	notifier      *notification.Notifier
}

// NewUpdateStatusUseCase 创建状态变更用例
func NewUpdateStatusUseCase(
	orderRepo order.Repository,
	inventoryRepo inventory.Repository,
	txManager Transactor,
	notifier *notification.Notifier,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
		notifier:      notifier,
	}
}

// UpdateStatusRequest 状态变更请求DTO
type UpdateStatusRequest struct {
	OrderID uint
	Target  order.Status
}

// UpdateStatusResponse 状态变更响应DTO
type UpdateStatusResponse struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	Status  string `json:"status"`
}

// Execute 执行状态变更
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*UpdateStatusResponse, error) {
	var result *order.Order
	var from order.Status

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// FOR UPDATE锁定订单行:并发流转在此排队,
		// 后到的事务读到前者提交后的状态,重复流转被状态机拒绝
		o, err := uc.orderRepo.LockByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}
		from = o.Status

		// 先做状态机校验,非法跳转直接拒绝,不碰库存
		if err := o.TransitionTo(req.Target); err != nil {
			return err
		}

		// 库存副作用(按from→target组合)
		switch {
		case from == order.StatusProcessing && req.Target == order.StatusShipped:
			if err := uc.confirmAllocations(txCtx, o); err != nil {
				return err
			}
		case from == order.StatusProcessing && req.Target == order.StatusCancelled:
			if err := uc.releaseAllocations(txCtx, o); err != nil {
				return err
			}
		case from == order.StatusCancelled && req.Target == order.StatusProcessing:
			if err := uc.reReserve(txCtx, o); err != nil {
				return err
			}
		}

		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			return err
		}

		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recordMetrics(from, result.Status)
	if uc.notifier != nil {
		uc.notifier.OrderStatusChanged(result, from, result.Status)
	}

	return &UpdateStatusResponse{
		OrderID: result.ID,
		OrderNo: result.OrderNo,
		Status:  result.Status.String(),
	}, nil
}

// confirmAllocations 发货确认:预留转实际扣减
// 按分配记录精确回到同一条库存(同商品多仓库不会扣错仓)
func (uc *UpdateStatusUseCase) confirmAllocations(ctx context.Context, o *order.Order) error {
	for _, item := range o.Items {
		for _, alloc := range item.Allocations {
			record, err := uc.inventoryRepo.LockByID(ctx, alloc.InventoryID)
			if err != nil {
				return err
			}
			if err := record.Confirm(alloc.Quantity); err != nil {
				return err
			}
			if err := uc.inventoryRepo.Update(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

// releaseAllocations 取消释放:预留量退回可售
func (uc *UpdateStatusUseCase) releaseAllocations(ctx context.Context, o *order.Order) error {
	for _, item := range o.Items {
		for _, alloc := range item.Allocations {
			record, err := uc.inventoryRepo.LockByID(ctx, alloc.InventoryID)
			if err != nil {
				return err
			}
			if err := record.Release(alloc.Quantity); err != nil {
				return err
			}
			if err := uc.inventoryRepo.Update(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

// reReserve 已取消订单恢复:按当前库存重新预留
// 原分配已随取消释放作废;重新跨仓分配,可能落在与原来不同的仓库。
// 任何一行预留不满足则整个恢复失败回滚,订单保持已取消。
func (uc *UpdateStatusUseCase) reReserve(ctx context.Context, o *order.Order) error {
	for i := range o.Items {
		records, err := uc.inventoryRepo.LockByProductID(ctx, o.Items[i].ProductID)
		if err != nil {
			return err
		}

		plans, err := inventory.Allocate(records, o.Items[i].Quantity)
		if err != nil {
			return err
		}

		for _, r := range records {
			for _, p := range plans {
				if p.InventoryID == r.ID {
					if err := uc.inventoryRepo.Update(ctx, r); err != nil {
						return err
					}
					break
				}
			}
		}

		allocations := make([]order.Allocation, len(plans))
		for j, p := range plans {
			allocations[j] = order.Allocation{
				OrderItemID: o.Items[i].ID,
				InventoryID: p.InventoryID,
				Quantity:    p.Quantity,
			}
		}
		o.Items[i].Allocations = allocations
	}

	return uc.orderRepo.ReplaceAllocations(ctx, o)
}

func (uc *UpdateStatusUseCase) recordMetrics(from, to order.Status) {
	if metrics.InventoryReservations == nil {
		return
	}
	switch {
	case from == order.StatusProcessing && to == order.StatusShipped:
		metrics.InventoryReservations.WithLabelValues("confirm").Inc()
	case from == order.StatusProcessing && to == order.StatusCancelled:
		metrics.InventoryReservations.WithLabelValues("release").Inc()
	case from == order.StatusCancelled && to == order.StatusProcessing:
		metrics.InventoryReservations.WithLabelValues("reserve").Inc()
	}
}
