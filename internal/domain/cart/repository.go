package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// FindByUserID 查询用户购物车全部条目
	FindByUserID(ctx context.Context, userID uint) ([]*Item, error)

	// FindByUserAndProduct 查询用户购物车中指定商品的条目
	FindByUserAndProduct(ctx context.Context, userID, productID uint) (*Item, error)

	// Create 新增购物车条目
	Create(ctx context.Context, item *Item) error

	// Update 更新购物车条目(数量)
	Update(ctx context.Context, item *Item) error

	// Delete 删除单个条目
	Delete(ctx context.Context, id uint) error

	// Clear 清空用户购物车(结算成功后调用,须在结算事务内)
	Clear(ctx context.Context, userID uint) error
}
