package dto

// PageRequest 通用分页查询参数
type PageRequest struct {
	Page     int `form:"page,default=1" binding:"gte=1"`
	PageSize int `form:"page_size,default=20" binding:"gte=1,lte=100"`
}
