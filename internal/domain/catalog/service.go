package catalog

import (
	"context"
	"errors"
	"regexp"
)

// Service 商品目录领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// PublishProduct 发布商品(上架)
	// 业务规则:
	// - SKU格式必须合法(字母数字与连字符,3-64位)
	// - 价格必须在1-99999999分之间
	// - SKU不能重复
	PublishProduct(ctx context.Context, sku, name, description string, price int64, categoryID uint, imageURL string) (*Product, error)

	// GetProductByID 根据ID获取商品详情
	GetProductByID(ctx context.Context, id uint) (*Product, error)

	// GetProductBySKU 根据SKU获取商品
	GetProductBySKU(ctx context.Context, sku string) (*Product, error)

	// UpdateProductInfo 更新商品基本信息
	UpdateProductInfo(ctx context.Context, id uint, name, description, imageURL string) error

	// UpdateProductPrice 更新商品价格(含折扣价)
	UpdateProductPrice(ctx context.Context, id uint, price, discountPrice int64) error

	// DeactivateProduct 下架商品
	DeactivateProduct(ctx context.Context, id uint) error

	// DeleteProduct 删除商品(软删除)
	DeleteProduct(ctx context.Context, id uint) error

	// ListProducts 分页查询商品列表
	// 公开接口,不需要权限校验
	ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// CreateCategory 创建分类
	// 业务规则:父分类(如指定)必须存在
	CreateCategory(ctx context.Context, name, description string, parentID uint) (*Category, error)

	// ListCategories 查询全部分类
	ListCategories(ctx context.Context) ([]*Category, error)
}

// service 领域服务实现
type service struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
}

// NewService 创建商品目录领域服务
func NewService(productRepo ProductRepository, categoryRepo CategoryRepository) Service {
	return &service{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// PublishProduct 发布商品
func (s *service) PublishProduct(ctx context.Context, sku, name, description string, price int64, categoryID uint, imageURL string) (*Product, error) {
	// 1. SKU格式校验
	if !isValidSKU(sku) {
		return nil, ErrInvalidSKU
	}

	// 2. 价格范围校验(1分-999999.99元)
	if price < 1 || price > 99999999 {
		return nil, ErrInvalidPrice
	}

	// 3. 分类校验(0表示未分类)
	if categoryID > 0 {
		if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
			return nil, err
		}
	}

	// 4. 检查SKU是否已存在
	existing, err := s.productRepo.FindBySKU(ctx, sku)
	if err == nil && existing != nil {
		return nil, ErrSKUDuplicate
	}
	if err != nil && !errors.Is(err, ErrProductNotFound) {
		return nil, err
	}

	// 5. 创建商品实体并持久化
	product := NewProduct(sku, name, description, price, categoryID, imageURL)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProductByID 根据ID获取商品
func (s *service) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// GetProductBySKU 根据SKU获取商品
func (s *service) GetProductBySKU(ctx context.Context, sku string) (*Product, error) {
	if !isValidSKU(sku) {
		return nil, ErrInvalidSKU
	}
	return s.productRepo.FindBySKU(ctx, sku)
}

// UpdateProductInfo 更新商品信息
func (s *service) UpdateProductInfo(ctx context.Context, id uint, name, description, imageURL string) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.UpdateInfo(name, description, imageURL)

	return s.productRepo.Update(ctx, product)
}

// UpdateProductPrice 更新商品价格
func (s *service) UpdateProductPrice(ctx context.Context, id uint, price, discountPrice int64) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := product.UpdatePrice(price, discountPrice); err != nil {
		return err
	}

	return s.productRepo.Update(ctx, product)
}

// DeactivateProduct 下架商品
func (s *service) DeactivateProduct(ctx context.Context, id uint) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.Deactivate()

	return s.productRepo.Update(ctx, product)
}

// DeleteProduct 删除商品
func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts 分页查询商品列表
func (s *service) ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// CreateCategory 创建分类
func (s *service) CreateCategory(ctx context.Context, name, description string, parentID uint) (*Category, error) {
	if parentID > 0 {
		if _, err := s.categoryRepo.FindByID(ctx, parentID); err != nil {
			return nil, err
		}
	}

	category := NewCategory(name, description, parentID)
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// ListCategories 查询全部分类
func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categoryRepo.List(ctx)
}

// isValidSKU 校验SKU格式
// 规则:3-64位,字母、数字、连字符组成
// 简化实现:不校验前缀规则(生产环境可按品类约定前缀)
var skuPattern = regexp.MustCompile(`^[A-Za-z0-9-]{3,64}$`)

func isValidSKU(sku string) bool {
	return skuPattern.MatchString(sku)
}
