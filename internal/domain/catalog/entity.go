package catalog

import (
	"time"
)

// Product 商品实体(聚合根)
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. SKU作为业务唯一标识(数据库层保证唯一性)
// 3. DiscountPrice为0表示无折扣;下单取SellingPrice()快照
type Product struct {
	ID            uint
	SKU           string // 商品编码(业务唯一)
	Name          string // 商品名称
	Description   string
	Price         int64 // 原价(分)
	DiscountPrice int64 // 折扣价(分),0表示无折扣
	CategoryID    uint  // 所属分类
	ImageURL      string
	Active        bool // 是否上架
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct 创建新商品(工厂方法)
func NewProduct(sku, name, description string, price int64, categoryID uint, imageURL string) *Product {
	now := time.Now()
	return &Product{
		SKU:         sku,
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		ImageURL:    imageURL,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SellingPrice 实际售价(有折扣价取折扣价)
// 下单时按此价做快照写入订单明细
func (p *Product) SellingPrice() int64 {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}

// UpdatePrice 更新价格(领域行为)
// 业务规则:原价必须>0;折扣价必须在[0,原价)区间
func (p *Product) UpdatePrice(price, discountPrice int64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	if discountPrice < 0 || (discountPrice > 0 && discountPrice >= price) {
		return ErrInvalidPrice
	}
	p.Price = price
	p.DiscountPrice = discountPrice
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新商品基本信息(空字段跳过)
func (p *Product) UpdateInfo(name, description, imageURL string) {
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	if imageURL != "" {
		p.ImageURL = imageURL
	}
	p.UpdatedAt = time.Now()
}

// Deactivate 下架商品
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Category 商品分类
// 支持一级父子结构(ParentID为0表示顶级分类)
type Category struct {
	ID          uint
	Name        string
	Description string
	ParentID    uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类
func NewCategory(name, description string, parentID uint) *Category {
	now := time.Now()
	return &Category{
		Name:        name,
		Description: description,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
