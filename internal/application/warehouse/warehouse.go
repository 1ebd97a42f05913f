package warehouse

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/warehouse"
)

// WarehouseUseCase 仓库管理用例(基础数据维护)
type WarehouseUseCase struct {
	warehouseRepo warehouse.Repository
}

// NewWarehouseUseCase 创建仓库管理用例
func NewWarehouseUseCase(warehouseRepo warehouse.Repository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo}
}

// WarehouseView 仓库视图DTO
type WarehouseView struct {
	ID       uint   `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Active   bool   `json:"active"`
}

// Create 创建仓库
func (uc *WarehouseUseCase) Create(ctx context.Context, code, name, location string) (*WarehouseView, error) {
	wh := warehouse.NewWarehouse(code, name, location)
	if err := uc.warehouseRepo.Create(ctx, wh); err != nil {
		return nil, err
	}
	return toWarehouseView(wh), nil
}

// GetByID 查询仓库详情
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id uint) (*WarehouseView, error) {
	wh, err := uc.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseView(wh), nil
}

// List 查询全部仓库
func (uc *WarehouseUseCase) List(ctx context.Context) ([]*WarehouseView, error) {
	warehouses, err := uc.warehouseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*WarehouseView, len(warehouses))
	for i, wh := range warehouses {
		views[i] = toWarehouseView(wh)
	}
	return views, nil
}

// SetActive 启用/停用仓库
// 停用后仓库的库存记录仍可查询,但不再接收新的库存记录
func (uc *WarehouseUseCase) SetActive(ctx context.Context, id uint, active bool) error {
	wh, err := uc.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if active {
		wh.Activate()
	} else {
		wh.Deactivate()
	}

	return uc.warehouseRepo.Update(ctx, wh)
}

func toWarehouseView(wh *warehouse.Warehouse) *WarehouseView {
	return &WarehouseView{
		ID:       wh.ID,
		Code:     wh.Code,
		Name:     wh.Name,
		Location: wh.Location,
		Active:   wh.Active,
	}
}
