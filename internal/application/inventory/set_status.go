package inventory

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/inventory"
)

// SetStatusUseCase 库存停售/恢复用例
// 停售是唯一允许人工设置的状态:其余状态一律由(数量,阈值)推导
type SetStatusUseCase struct {
	inventoryRepo inventory.Repository
	txManager     Transactor
}

// NewSetStatusUseCase 创建停售/恢复用例
func NewSetStatusUseCase(inventoryRepo inventory.Repository, txManager Transactor) *SetStatusUseCase {
	return &SetStatusUseCase{
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
	}
}

// SetStatusRequest 停售/恢复请求DTO
type SetStatusRequest struct {
	RecordID     uint
	Discontinued bool // true停售,false恢复自动推导
}

// SetStatusResponse 停售/恢复响应DTO
type SetStatusResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

// Execute 执行停售/恢复
func (uc *SetStatusUseCase) Execute(ctx context.Context, req SetStatusRequest) (*SetStatusResponse, error) {
	var record *inventory.Record
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		record, err = uc.inventoryRepo.LockByID(txCtx, req.RecordID)
		if err != nil {
			return err
		}

		if req.Discontinued {
			record.Discontinue()
		} else {
			record.Reinstate()
		}

		return uc.inventoryRepo.Update(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	return &SetStatusResponse{
		ID:     record.ID,
		Status: record.Status.String(),
	}, nil
}
