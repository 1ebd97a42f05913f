package inventory

import (
	"context"
	"time"

	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	"github.com/xiebiao/ecommerce/internal/domain/warehouse"
)

// CreateRecordUseCase 创建库存记录用例
type CreateRecordUseCase struct {
	inventoryRepo inventory.Repository
	warehouseRepo warehouse.Repository
}

// NewCreateRecordUseCase 创建用例
func NewCreateRecordUseCase(
	inventoryRepo inventory.Repository,
	warehouseRepo warehouse.Repository,
) *CreateRecordUseCase {
	return &CreateRecordUseCase{
		inventoryRepo: inventoryRepo,
		warehouseRepo: warehouseRepo,
	}
}

// CreateRecordRequest 创建库存记录请求DTO
type CreateRecordRequest struct {
	ProductID        uint
	WarehouseID      uint
	Quantity         int
	ReorderThreshold int
	ReorderQuantity  int
	SKU              string
	BatchNumber      string
	ExpiryDate       *time.Time
}

// CreateRecordResponse 创建库存记录响应DTO
type CreateRecordResponse struct {
	ID                uint   `json:"id"`
	ProductID         uint   `json:"product_id"`
	WarehouseID       uint   `json:"warehouse_id"`
	Quantity          int    `json:"quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	Status            string `json:"status"`
}

// Execute 执行创建库存记录
// 业务规则:
// 1. 仓库必须存在且启用
// 2. 同一(商品,仓库)组合只能有一条记录(数据库唯一索引兜底)
// 3. 初始状态由(数量,补货阈值)推导
func (uc *CreateRecordUseCase) Execute(ctx context.Context, req CreateRecordRequest) (*CreateRecordResponse, error) {
	// 1. 校验仓库
	wh, err := uc.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !wh.Active {
		return nil, warehouse.ErrWarehouseNotFound
	}

	// 2. 创建实体
	record, err := inventory.NewRecord(req.ProductID, req.WarehouseID, req.Quantity, req.ReorderThreshold, req.SKU)
	if err != nil {
		return nil, err
	}
	record.ReorderQuantity = req.ReorderQuantity
	record.BatchNumber = req.BatchNumber
	record.ExpiryDate = req.ExpiryDate

	// 3. 持久化(重复创建由唯一索引拦截,返回ErrDuplicateRecord)
	if err := uc.inventoryRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &CreateRecordResponse{
		ID:                record.ID,
		ProductID:         record.ProductID,
		WarehouseID:       record.WarehouseID,
		Quantity:          record.Quantity,
		AvailableQuantity: record.AvailableQuantity(),
		Status:            record.Status.String(),
	}, nil
}
