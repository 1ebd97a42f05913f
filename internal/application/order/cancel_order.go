package order

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/application/notification"
	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	"github.com/xiebiao/ecommerce/internal/domain/order"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
	"github.com/xiebiao/ecommerce/pkg/metrics"
)

// CancelOrderUseCase 买家取消订单用例
// 与UpdateStatus的区别:归属校验(只能取消自己的订单) + Cancel语义
// (已发货/已送达一律拒绝,而非按状态机逐一判断)
type CancelOrderUseCase struct {
	orderRepo     order.Repository
	inventoryRepo inventory.Repository
	txManager     Transactor
	notifier      *notification.Notifier
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	inventoryRepo inventory.Repository,
	txManager Transactor,
	notifier *notification.Notifier,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
		notifier:      notifier,
	}
}

// Execute 执行取消
// 事务内:状态流转 + 按分配记录释放预留
func (uc *CancelOrderUseCase) Execute(ctx context.Context, orderID, userID uint) error {
	var result *order.Order
	var from order.Status

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// FOR UPDATE锁定订单行,并发取消只有一个能通过Cancel校验
		o, err := uc.orderRepo.LockByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if !o.IsOwnedBy(userID) {
			return apperrors.ErrForbidden
		}
		from = o.Status

		if err := o.Cancel(); err != nil {
			return err
		}

		// 释放全部预留
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

		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			return err
		}

		result = o
		return nil
	})
	if err != nil {
		return err
	}

	if metrics.InventoryReservations != nil {
		metrics.InventoryReservations.WithLabelValues("release").Inc()
	}
	if uc.notifier != nil {
		uc.notifier.OrderStatusChanged(result, from, result.Status)
	}

	return nil
}
