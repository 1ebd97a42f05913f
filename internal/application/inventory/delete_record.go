package inventory

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// DeleteRecordUseCase 删除库存记录用例
type DeleteRecordUseCase struct {
	inventoryRepo inventory.Repository
	txManager     Transactor
}

// NewDeleteRecordUseCase 创建删除库存记录用例
func NewDeleteRecordUseCase(inventoryRepo inventory.Repository, txManager Transactor) *DeleteRecordUseCase {
	return &DeleteRecordUseCase{
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
	}
}

// Execute 执行删除
// 业务规则:仍有未释放预留的记录不允许删除(订单还指望这批货发出去)
func (uc *DeleteRecordUseCase) Execute(ctx context.Context, recordID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		record, err := uc.inventoryRepo.LockByID(txCtx, recordID)
		if err != nil {
			return err
		}

		if record.ReservedQuantity > 0 {
			return apperrors.New(apperrors.ErrCodeBusinessError, "存在未释放的预留,不能删除库存记录")
		}

		return uc.inventoryRepo.Delete(txCtx, recordID)
	})
}
