package order

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	"github.com/xiebiao/ecommerce/internal/domain/order"
	"github.com/xiebiao/ecommerce/pkg/metrics"
)

// DeleteOrderUseCase 删除订单用例(管理操作)
// 处理中的订单仍持有库存预留,删除前必须先释放,
// 否则预留量永远挂在库存上无人认领
type DeleteOrderUseCase struct {
	orderRepo     order.Repository
	inventoryRepo inventory.Repository
	txManager     Transactor
}

// NewDeleteOrderUseCase 创建删除订单用例
func NewDeleteOrderUseCase(
	orderRepo order.Repository,
	inventoryRepo inventory.Repository,
	txManager Transactor,
) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
	}
}

// Execute 执行删除
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, orderID uint) error {
	released := false

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// FOR UPDATE锁定订单行,与并发的状态流转串行
		o, err := uc.orderRepo.LockByID(txCtx, orderID)
		if err != nil {
			return err
		}

		// 仍持有预留的订单,先释放再删除
		if o.HoldsReservation() {
			for _, item := range o.Items {
				for _, alloc := range item.Allocations {
					record, err := uc.inventoryRepo.LockByID(txCtx, alloc.InventoryID)
					if err != nil {
						return err
					}
					if err := record.Release(alloc.Quantity); err != nil {
						return err
					}
					if err := uc.inventoryRepo.Update(txCtx, record); err != nil {
						return err
					}
				}
			}
			released = true
		}

		return uc.orderRepo.Delete(txCtx, orderID)
	})
	if err != nil {
		return err
	}

	if released && metrics.InventoryReservations != nil {
		metrics.InventoryReservations.WithLabelValues("release").Inc()
	}

	return nil
}
