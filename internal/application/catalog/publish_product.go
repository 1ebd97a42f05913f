package catalog

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/catalog"
)

// PublishProductUseCase 发布商品用例
type PublishProductUseCase struct {
	catalogService catalog.Service
}

// NewPublishProductUseCase 创建发布商品用例
func NewPublishProductUseCase(catalogService catalog.Service) *PublishProductUseCase {
	return &PublishProductUseCase{catalogService: catalogService}
}

// PublishProductRequest 发布商品请求DTO
type PublishProductRequest struct {
	SKU         string
	Name        string
	Description string
	Price       int64
	CategoryID  uint
	ImageURL    string
}

// PublishProductResponse 发布商品响应DTO
type PublishProductResponse struct {
	ID   uint   `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// Execute 执行发布
func (uc *PublishProductUseCase) Execute(ctx context.Context, req PublishProductRequest) (*PublishProductResponse, error) {
	product, err := uc.catalogService.PublishProduct(ctx, req.SKU, req.Name, req.Description, req.Price, req.CategoryID, req.ImageURL)
	if err != nil {
		return nil, err
	}

	return &PublishProductResponse{
		ID:   product.ID,
		SKU:  product.SKU,
		Name: product.Name,
	}, nil
}
