package dto

import "time"

// CreateInventoryRequest 创建库存记录请求
type CreateInventoryRequest struct {
	ProductID        uint       `json:"product_id" binding:"required"`
	WarehouseID      uint       `json:"warehouse_id" binding:"required"`
	Quantity         int        `json:"quantity" binding:"gte=0"`
	ReorderThreshold int        `json:"reorder_threshold" binding:"gte=0"`
	ReorderQuantity  int        `json:"reorder_quantity" binding:"gte=0"`
	SKU              string     `json:"sku" binding:"max=64"`
	BatchNumber      string     `json:"batch_number" binding:"max=64"`
	ExpiryDate       *time.Time `json:"expiry_date"`
}

// AdjustInventoryRequest 调整库存请求(入库为正,出库/盘亏为负)
type AdjustInventoryRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// SetInventoryStatusRequest 停售/恢复请求
type SetInventoryStatusRequest struct {
	Discontinued *bool `json:"discontinued" binding:"required"`
}

// CreateWarehouseRequest 创建仓库请求
type CreateWarehouseRequest struct {
	Code     string `json:"code" binding:"required,max=32" example:"WH-EAST-01"`
	Name     string `json:"name" binding:"required,max=100"`
	Location string `json:"location" binding:"max=200"`
}

// SetWarehouseActiveRequest 启用/停用仓库请求
type SetWarehouseActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
