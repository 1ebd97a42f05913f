package dto

// CreateOrderRequest 直接下单请求
type CreateOrderRequest struct {
	Items             []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddressID uint                     `json:"shipping_address_id" binding:"required"`
	BillingAddressID  uint                     `json:"billing_address_id"`
	PaymentMethod     string                   `json:"payment_method" binding:"required,max=32" example:"alipay"`
}

// CreateOrderItemRequest 下单明细项
type CreateOrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest 购物车结算请求
type CheckoutRequest struct {
	ShippingAddressID uint   `json:"shipping_address_id" binding:"required"`
	BillingAddressID  uint   `json:"billing_address_id"`
	PaymentMethod     string `json:"payment_method" binding:"required,max=32"`
}

// UpdateOrderStatusRequest 订单状态变更请求
// 取值:2已发货 3已送达 4已取消 1恢复处理中
type UpdateOrderStatusRequest struct {
	Status int `json:"status" binding:"required,oneof=1 2 3 4"`
}

// UpdatePaymentStatusRequest 支付状态变更请求
// 取值:2已支付 3支付失败 4已退款 1重新待支付
type UpdatePaymentStatusRequest struct {
	PaymentStatus int `json:"payment_status" binding:"required,oneof=1 2 3 4"`
}

// ListOrdersByDateRequest 按日期范围查询订单参数
type ListOrdersByDateRequest struct {
	Start string `form:"start" binding:"required" example:"2026-01-01"`
	End   string `form:"end" binding:"required" example:"2026-01-31"`
}
