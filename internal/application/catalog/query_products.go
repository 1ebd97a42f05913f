package catalog

import (
	"context"
	"log"

	"github.com/xiebiao/ecommerce/internal/domain/catalog"
	"github.com/xiebiao/ecommerce/internal/infrastructure/persistence/redis"
)

// QueryProductsUseCase 商品查询用例(详情、列表)
// 详情走Cache-Aside:先查Redis,未命中回源MySQL后写缓存
type QueryProductsUseCase struct {
	catalogService catalog.Service
	productCache   *redis.ProductCache
}

// NewQueryProductsUseCase 创建商品查询用例
// productCache可以为nil(未启用缓存时直接回源)
func NewQueryProductsUseCase(catalogService catalog.Service, productCache *redis.ProductCache) *QueryProductsUseCase {
	return &QueryProductsUseCase{
		catalogService: catalogService,
		productCache:   productCache,
	}
}

// ProductView 商品视图DTO
type ProductView struct {
	ID            uint   `json:"id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	DiscountPrice int64  `json:"discount_price,omitempty"`
	SellingPrice  int64  `json:"selling_price"`
	CategoryID    uint   `json:"category_id"`
	ImageURL      string `json:"image_url"`
	Active        bool   `json:"active"`
}

// GetByID 查询商品详情(Cache-Aside)
func (uc *QueryProductsUseCase) GetByID(ctx context.Context, id uint) (*ProductView, error) {
	// 1. 查缓存
	if uc.productCache != nil {
		cached, err := uc.productCache.Get(ctx, id)
		if err != nil {
			log.Printf("商品缓存查询失败(回源): id=%d, err=%v", id, err)
		} else if cached != nil {
			return toProductView(cached), nil
		}
	}

	// 2. 回源数据库
	product, err := uc.catalogService.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 写缓存(失败不影响查询)
	if uc.productCache != nil {
		if err := uc.productCache.Set(ctx, product); err != nil {
			log.Printf("商品缓存写入失败(忽略): id=%d, err=%v", id, err)
		}
	}

	return toProductView(product), nil
}

// List 分页查询商品列表
func (uc *QueryProductsUseCase) List(ctx context.Context, params catalog.ListParams) ([]*ProductView, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	products, total, err := uc.catalogService.ListProducts(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*ProductView, len(products))
	for i, p := range products {
		views[i] = toProductView(p)
	}
	return views, total, nil
}

func toProductView(p *catalog.Product) *ProductView {
	return &ProductView{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		SellingPrice:  p.SellingPrice(),
		CategoryID:    p.CategoryID,
		ImageURL:      p.ImageURL,
		Active:        p.Active,
	}
}
