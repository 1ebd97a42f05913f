package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/ecommerce/internal/domain/cart"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 设计说明:
// Clear在结算事务内调用,必须通过getDB参与事务
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// FindByUserID 查询用户购物车全部条目
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) ([]*cart.Item, error) {
	var models []CartItemModel
	db := getDB(ctx, r.db)
	err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	items := make([]*cart.Item, len(models))
	for i := range models {
		items[i] = toCartItemEntity(&models[i])
	}
	return items, nil
}

// FindByUserAndProduct 查询用户购物车中指定商品的条目
func (r *cartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uint) (*cart.Item, error) {
	var model CartItemModel
	db := getDB(ctx, r.db)
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}

	return toCartItemEntity(&model), nil
}

// Create 新增购物车条目
func (r *cartRepository) Create(ctx context.Context, item *cart.Item) error {
	model := &CartItemModel{
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "加入购物车失败")
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

// Update 更新购物车条目
func (r *cartRepository) Update(ctx context.Context, item *cart.Item) error {
	db := getDB(ctx, r.db)
	result := db.Model(&CartItemModel{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"quantity":   item.Quantity,
		"updated_at": item.UpdatedAt,
	})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车失败")
	}

	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}

	return nil
}

// Delete 删除单个条目
func (r *cartRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)
	result := db.Delete(&CartItemModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}

	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}

	return nil
}

// Clear 清空用户购物车
func (r *cartRepository) Clear(ctx context.Context, userID uint) error {
	db := getDB(ctx, r.db)
	if err := db.Where("user_id = ?", userID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

// toCartItemEntity GORM模型 → 领域实体
func toCartItemEntity(model *CartItemModel) *cart.Item {
	return &cart.Item{
		ID:        model.ID,
		UserID:    model.UserID,
		ProductID: model.ProductID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
