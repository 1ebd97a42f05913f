package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/ecommerce/internal/domain/inventory"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// inventoryRepository 库存仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/inventory/repository.go定义的接口
// 2. Lock开头的方法使用SELECT FOR UPDATE,必须在TxManager事务内调用
// 3. Update基于version列做乐观校验:WHERE id = ? AND version = 旧值
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// Create 创建库存记录
func (r *inventoryRepository) Create(ctx context.Context, record *inventory.Record) error {
	model := toInventoryModel(record)

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		// (product_id, warehouse_id)复合唯一索引冲突
		if isDuplicateError(err) {
			return inventory.ErrDuplicateRecord
		}
		return apperrors.Wrap(err, "创建库存记录失败")
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	record.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找库存记录
func (r *inventoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Record, error) {
	var model InventoryModel
	db := getDB(ctx, r.db)
	err := db.First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存记录失败")
	}

	return toInventoryEntity(&model), nil
}

// FindByProductAndWarehouse 根据(商品,仓库)组合查找
func (r *inventoryRepository) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uint) (*inventory.Record, error) {
	var model InventoryModel
	db := getDB(ctx, r.db)
	err := db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存记录失败")
	}

	return toInventoryEntity(&model), nil
}

// FindByProductID 查询某商品在所有仓库的库存记录
func (r *inventoryRepository) FindByProductID(ctx context.Context, productID uint) ([]*inventory.Record, error) {
	var models []InventoryModel
	db := getDB(ctx, r.db)
	err := db.Where("product_id = ?", productID).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询库存记录失败")
	}
	return toInventoryEntities(models), nil
}

// FindByWarehouseID 查询某仓库的全部库存记录
func (r *inventoryRepository) FindByWarehouseID(ctx context.Context, warehouseID uint) ([]*inventory.Record, error) {
	var models []InventoryModel
	db := getDB(ctx, r.db)
	err := db.Where("warehouse_id = ?", warehouseID).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询库存记录失败")
	}
	return toInventoryEntities(models), nil
}

// List 查询全部库存记录(分页)
func (r *inventoryRepository) List(ctx context.Context, page, pageSize int) ([]*inventory.Record, int64, error) {
	var models []InventoryModel
	var total int64

	db := getDB(ctx, r.db)
	query := db.Model(&InventoryModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询库存总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("id ASC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询库存列表失败")
	}

	return toInventoryEntities(models), total, nil
}

// ListLowStock 查询所有低库存记录
// 条件:已设置补货阈值,且在库数量不高于阈值(含缺货)
func (r *inventoryRepository) ListLowStock(ctx context.Context) ([]*inventory.Record, error) {
	var models []InventoryModel
	db := getDB(ctx, r.db)
	err := db.Where("reorder_threshold > 0 AND quantity <= reorder_threshold").
		Order("quantity ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询低库存记录失败")
	}
	return toInventoryEntities(models), nil
}

// LockByID 悲观锁查询库存记录(SELECT FOR UPDATE)
// 必须在TxManager事务内调用,否则锁随语句结束立即释放
func (r *inventoryRepository) LockByID(ctx context.Context, id uint) (*inventory.Record, error) {
	var model InventoryModel
	db := getDB(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "锁定库存记录失败")
	}

	return toInventoryEntity(&model), nil
}

// LockByProductID 悲观锁查询某商品的全部库存记录
// 按ID升序锁定:所有调用方保持一致的加锁顺序,避免死锁
func (r *inventoryRepository) LockByProductID(ctx context.Context, productID uint) ([]*inventory.Record, error) {
	var models []InventoryModel
	db := getDB(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "锁定库存记录失败")
	}
	return toInventoryEntities(models), nil
}

// Update 更新库存记录(版本校验)
// WHERE条件携带旧版本号:实体变更方法已将Version+1,
// 这里用Version-1匹配数据库中的当前行,不匹配说明有并发写入
func (r *inventoryRepository) Update(ctx context.Context, record *inventory.Record) error {
	db := getDB(ctx, r.db)

	result := db.Model(&InventoryModel{}).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity":          record.Quantity,
			"reserved_quantity": record.ReservedQuantity,
			"reorder_threshold": record.ReorderThreshold,
			"reorder_quantity":  record.ReorderQuantity,
			"status":            int(record.Status),
			"sku":               record.SKU,
			"batch_number":      record.BatchNumber,
			"expiry_date":       record.ExpiryDate,
			"version":           record.Version,
			"updated_at":        record.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存记录失败")
	}

	if result.RowsAffected == 0 {
		// 行不存在,或版本号不匹配(被并发修改)
		var model InventoryModel
		if err := db.First(&model, record.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return inventory.ErrRecordNotFound
			}
			return apperrors.Wrap(err, "查询库存记录失败")
		}
		return inventory.ErrVersionConflict
	}

	return nil
}

// Delete 删除库存记录
func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)
	result := db.Delete(&InventoryModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除库存记录失败")
	}

	if result.RowsAffected == 0 {
		return inventory.ErrRecordNotFound
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toInventoryModel 领域实体 → GORM模型
func toInventoryModel(record *inventory.Record) *InventoryModel {
	return &InventoryModel{
		ID:               record.ID,
		ProductID:        record.ProductID,
		WarehouseID:      record.WarehouseID,
		Quantity:         record.Quantity,
		ReservedQuantity: record.ReservedQuantity,
		ReorderThreshold: record.ReorderThreshold,
		ReorderQuantity:  record.ReorderQuantity,
		Status:           int(record.Status),
		SKU:              record.SKU,
		BatchNumber:      record.BatchNumber,
		ExpiryDate:       record.ExpiryDate,
		Version:          record.Version,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

// toInventoryEntity GORM模型 → 领域实体
func toInventoryEntity(model *InventoryModel) *inventory.Record {
	return &inventory.Record{
		ID:               model.ID,
		ProductID:        model.ProductID,
		WarehouseID:      model.WarehouseID,
		Quantity:         model.Quantity,
		ReservedQuantity: model.ReservedQuantity,
		ReorderThreshold: model.ReorderThreshold,
		ReorderQuantity:  model.ReorderQuantity,
		Status:           inventory.Status(model.Status),
		SKU:              model.SKU,
		BatchNumber:      model.BatchNumber,
		ExpiryDate:       model.ExpiryDate,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func toInventoryEntities(models []InventoryModel) []*inventory.Record {
	records := make([]*inventory.Record, len(models))
	for i := range models {
		records[i] = toInventoryEntity(&models[i])
	}
	return records
}
