package catalog

import (
	"context"
	"log"

	"github.com/xiebiao/ecommerce/internal/domain/catalog"
	"github.com/xiebiao/ecommerce/internal/infrastructure/persistence/redis"
)

// UpdateProductUseCase 商品维护用例(改信息、改价、下架、删除)
// 所有变更操作成功后使商品缓存失效
type UpdateProductUseCase struct {
	catalogService catalog.Service
	productCache   *redis.ProductCache
}

// NewUpdateProductUseCase 创建商品维护用例
func NewUpdateProductUseCase(catalogService catalog.Service, productCache *redis.ProductCache) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		catalogService: catalogService,
		productCache:   productCache,
	}
}

// UpdateInfoRequest 更新商品信息请求DTO
type UpdateInfoRequest struct {
	ProductID   uint
	Name        string
	Description string
	ImageURL    string
}

// UpdateInfo 更新商品信息
func (uc *UpdateProductUseCase) UpdateInfo(ctx context.Context, req UpdateInfoRequest) error {
	if err := uc.catalogService.UpdateProductInfo(ctx, req.ProductID, req.Name, req.Description, req.ImageURL); err != nil {
		return err
	}
	uc.invalidate(ctx, req.ProductID)
	return nil
}

// UpdatePrice 更新商品价格
func (uc *UpdateProductUseCase) UpdatePrice(ctx context.Context, productID uint, price, discountPrice int64) error {
	if err := uc.catalogService.UpdateProductPrice(ctx, productID, price, discountPrice); err != nil {
		return err
	}
	uc.invalidate(ctx, productID)
	return nil
}

// Deactivate 下架商品
func (uc *UpdateProductUseCase) Deactivate(ctx context.Context, productID uint) error {
	if err := uc.catalogService.DeactivateProduct(ctx, productID); err != nil {
		return err
	}
	uc.invalidate(ctx, productID)
	return nil
}

// Delete 删除商品
func (uc *UpdateProductUseCase) Delete(ctx context.Context, productID uint) error {
	if err := uc.catalogService.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	uc.invalidate(ctx, productID)
	return nil
}

func (uc *UpdateProductUseCase) invalidate(ctx context.Context, productID uint) {
	if uc.productCache == nil {
		return
	}
	if err := uc.productCache.Invalidate(ctx, productID); err != nil {
		log.Printf("商品缓存失效失败(忽略): id=%d, err=%v", productID, err)
	}
}
