package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/ecommerce/internal/domain/warehouse"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// warehouseRepository 仓库仓储实现(MySQL)
type warehouseRepository struct {
	db *gorm.DB
}

// NewWarehouseRepository 创建仓库仓储
func NewWarehouseRepository(db *gorm.DB) warehouse.Repository {
	return &warehouseRepository{db: db}
}

// Create 创建仓库
func (r *warehouseRepository) Create(ctx context.Context, w *warehouse.Warehouse) error {
	model := &WarehouseModel{
		Code:     w.Code,
		Name:     w.Name,
		Location: w.Location,
		Active:   w.Active,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return warehouse.ErrCodeDuplicate
		}
		return apperrors.Wrap(err, "创建仓库失败")
	}

	w.ID = model.ID
	w.CreatedAt = model.CreatedAt
	w.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找仓库
func (r *warehouseRepository) FindByID(ctx context.Context, id uint) (*warehouse.Warehouse, error) {
	var model WarehouseModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, warehouse.ErrWarehouseNotFound
		}
		return nil, apperrors.Wrap(err, "查询仓库失败")
	}

	return toWarehouseEntity(&model), nil
}

// FindByCode 根据编码查找仓库
func (r *warehouseRepository) FindByCode(ctx context.Context, code string) (*warehouse.Warehouse, error) {
	var model WarehouseModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, warehouse.ErrWarehouseNotFound
		}
		return nil, apperrors.Wrap(err, "查询仓库失败")
	}

	return toWarehouseEntity(&model), nil
}

// Update 更新仓库
func (r *warehouseRepository) Update(ctx context.Context, w *warehouse.Warehouse) error {
	model := &WarehouseModel{
		ID:       w.ID,
		Code:     w.Code,
		Name:     w.Name,
		Location: w.Location,
		Active:   w.Active,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新仓库失败")
	}

	w.UpdatedAt = model.UpdatedAt
	return nil
}

// List 查询全部仓库
func (r *warehouseRepository) List(ctx context.Context) ([]*warehouse.Warehouse, error) {
	var models []WarehouseModel
	err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询仓库列表失败")
	}

	warehouses := make([]*warehouse.Warehouse, len(models))
	for i := range models {
		warehouses[i] = toWarehouseEntity(&models[i])
	}
	return warehouses, nil
}

// toWarehouseEntity GORM模型 → 领域实体
func toWarehouseEntity(model *WarehouseModel) *warehouse.Warehouse {
	return &warehouse.Warehouse{
		ID:        model.ID,
		Code:      model.Code,
		Name:      model.Name,
		Location:  model.Location,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
