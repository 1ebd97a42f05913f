package catalog

import (
	"context"
)

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// Create 创建商品
	Create(ctx context.Context, product *Product) error

	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindBySKU 根据SKU查找商品
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// Update 更新商品信息
	Update(ctx context.Context, product *Product) error

	// Delete 删除商品(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询商品列表(支持关键词搜索与排序)
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*Category, error)
}

// ListParams 商品列表查询参数
type ListParams struct {
	Page       int    // 页码(从1开始)
	PageSize   int    // 每页数量
	Keyword    string // 搜索关键词(名称、描述)
	CategoryID uint   // 按分类过滤(0表示不过滤)
	SortBy     string // 排序字段(price_asc, price_desc, created_at_desc)
}
