package dto

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest 调整购物车条目数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// SaveAddressRequest 新增/更新收货地址请求
type SaveAddressRequest struct {
	Receiver  string `json:"receiver" binding:"required,max=50"`
	Phone     string `json:"phone" binding:"required,max=20"`
	Province  string `json:"province" binding:"required,max=50"`
	City      string `json:"city" binding:"required,max=50"`
	District  string `json:"district" binding:"max=50"`
	Street    string `json:"street" binding:"required,max=200"`
	ZipCode   string `json:"zip_code" binding:"max=10"`
	IsDefault bool   `json:"is_default"`
}

// CreateReviewRequest 创建商品评价请求
type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment" binding:"max=2000"`
}
