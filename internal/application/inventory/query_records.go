package inventory

import (
	"context"
	"time"

	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	"github.com/xiebiao/ecommerce/pkg/metrics"
)

// QueryRecordsUseCase 库存查询用例(详情、列表、低库存)
type QueryRecordsUseCase struct {
	inventoryRepo inventory.Repository
}

// NewQueryRecordsUseCase 创建库存查询用例
func NewQueryRecordsUseCase(inventoryRepo inventory.Repository) *QueryRecordsUseCase {
	return &QueryRecordsUseCase{inventoryRepo: inventoryRepo}
}

// RecordView 库存记录视图DTO
type RecordView struct {
	ID                uint       `json:"id"`
	ProductID         uint       `json:"product_id"`
	WarehouseID       uint       `json:"warehouse_id"`
	Quantity          int        `json:"quantity"`
	ReservedQuantity  int        `json:"reserved_quantity"`
	AvailableQuantity int        `json:"available_quantity"`
	ReorderThreshold  int        `json:"reorder_threshold"`
	ReorderQuantity   int        `json:"reorder_quantity"`
	Status            string     `json:"status"`
	SKU               string     `json:"sku"`
	BatchNumber       string     `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	IsLowStock        bool       `json:"is_low_stock"`
	UpdatedAt         string     `json:"updated_at"`
}

// GetByID 查询库存详情
func (uc *QueryRecordsUseCase) GetByID(ctx context.Context, id uint) (*RecordView, error) {
	record, err := uc.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecordView(record), nil
}

// ListByProduct 查询某商品在所有仓库的库存
func (uc *QueryRecordsUseCase) ListByProduct(ctx context.Context, productID uint) ([]*RecordView, error) {
	records, err := uc.inventoryRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toRecordViews(records), nil
}

// ListByWarehouse 查询某仓库的全部库存
func (uc *QueryRecordsUseCase) ListByWarehouse(ctx context.Context, warehouseID uint) ([]*RecordView, error) {
	records, err := uc.inventoryRepo.FindByWarehouseID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return toRecordViews(records), nil
}

// List 分页查询全部库存
func (uc *QueryRecordsUseCase) List(ctx context.Context, page, pageSize int) ([]*RecordView, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	records, total, err := uc.inventoryRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toRecordViews(records), total, nil
}

// ListLowStock 查询所有低库存记录(补货报表)
// 顺带刷新低库存Gauge指标
func (uc *QueryRecordsUseCase) ListLowStock(ctx context.Context) ([]*RecordView, error) {
	records, err := uc.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	if metrics.LowStockRecords != nil {
		metrics.LowStockRecords.Set(float64(len(records)))
	}

	return toRecordViews(records), nil
}

func toRecordView(r *inventory.Record) *RecordView {
	return &RecordView{
		ID:                r.ID,
		ProductID:         r.ProductID,
		WarehouseID:       r.WarehouseID,
		Quantity:          r.Quantity,
		ReservedQuantity:  r.ReservedQuantity,
		AvailableQuantity: r.AvailableQuantity(),
		ReorderThreshold:  r.ReorderThreshold,
		ReorderQuantity:   r.ReorderQuantity,
		Status:            r.Status.String(),
		SKU:               r.SKU,
		BatchNumber:       r.BatchNumber,
		ExpiryDate:        r.ExpiryDate,
		IsLowStock:        r.IsLowStock(),
		UpdatedAt:         r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toRecordViews(records []*inventory.Record) []*RecordView {
	views := make([]*RecordView, len(records))
	for i, r := range records {
		views[i] = toRecordView(r)
	}
	return views
}
