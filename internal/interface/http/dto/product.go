package dto

import "fmt"

// PublishProductRequest 发布商品请求
type PublishProductRequest struct {
	SKU         string `json:"sku" binding:"required,min=3,max=64" example:"TSHIRT-RED-M"`
	Name        string `json:"name" binding:"required,max=200" example:"纯棉T恤 红色 M码"`
	Description string `json:"description" binding:"max=5000"`
	Price       int64  `json:"price" binding:"required,gt=0" example:"3150"` // 单位:分
	CategoryID  uint   `json:"category_id"`
	ImageURL    string `json:"image_url" binding:"max=500"`
}

// UpdateProductRequest 更新商品信息请求
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"max=200"`
	Description string `json:"description" binding:"max=5000"`
	ImageURL    string `json:"image_url" binding:"max=500"`
}

// UpdatePriceRequest 更新商品价格请求
type UpdatePriceRequest struct {
	Price         int64 `json:"price" binding:"required,gt=0"`
	DiscountPrice int64 `json:"discount_price" binding:"gte=0"`
}

// ListProductsRequest 商品列表查询参数
type ListProductsRequest struct {
	Page       int    `form:"page,default=1" binding:"gte=1"`
	PageSize   int    `form:"page_size,default=20" binding:"gte=1,lte=100"`
	Keyword    string `form:"keyword"`
	CategoryID uint   `form:"category_id"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc"`
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	ParentID    uint   `json:"parent_id"`
}

// FormatPriceYuan 格式化价格(分→元)
func FormatPriceYuan(priceFen int64) string {
	return fmt.Sprintf("%.2f", float64(priceFen)/100.0)
}
