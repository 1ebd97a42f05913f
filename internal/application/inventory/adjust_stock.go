package inventory

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/inventory"
)

// Transactor 事务执行器(由mysql.TxManager实现)
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdjustStockUseCase 调整库存用例(入库、盘点、盘亏)
type AdjustStockUseCase struct {
	inventoryRepo inventory.Repository
	txManager     Transactor
}

// NewAdjustStockUseCase 创建调整库存用例
func NewAdjustStockUseCase(inventoryRepo inventory.Repository, txManager Transactor) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
	}
}

// AdjustStockRequest 调整库存请求DTO
type AdjustStockRequest struct {
	RecordID uint
	Delta    int // 入库为正,出库/盘亏为负
}

// AdjustStockResponse 调整库存响应DTO
type AdjustStockResponse struct {
	ID                uint   `json:"id"`
	Quantity          int    `json:"quantity"`
	ReservedQuantity  int    `json:"reserved_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	Status            string `json:"status"`
	IsLowStock        bool   `json:"is_low_stock"`
}

// Execute 执行库存调整
// 流程:事务内锁行 → 实体校验并调整 → 版本校验更新
// 失败时(调整为负、低于已预留)事务回滚,库存保持原状
func (uc *AdjustStockUseCase) Execute(ctx context.Context, req AdjustStockRequest) (*AdjustStockResponse, error) {
	var record *inventory.Record
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		record, err = uc.inventoryRepo.LockByID(txCtx, req.RecordID)
		if err != nil {
			return err
		}

		if err := record.Adjust(req.Delta); err != nil {
			return err
		}

		return uc.inventoryRepo.Update(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	return &AdjustStockResponse{
		ID:                record.ID,
		Quantity:          record.Quantity,
		ReservedQuantity:  record.ReservedQuantity,
		AvailableQuantity: record.AvailableQuantity(),
		Status:            record.Status.String(),
		IsLowStock:        record.IsLowStock(),
	}, nil
}
