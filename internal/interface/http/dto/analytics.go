package dto

// StatsDateRangeRequest 统计区间查询参数
type StatsDateRangeRequest struct {
	Start string `form:"start" binding:"required" example:"2026-01-01"`
	End   string `form:"end" binding:"required" example:"2026-01-31"`
}

// TopProductsRequest 热销商品排行查询参数
type TopProductsRequest struct {
	Start string `form:"start" binding:"required" example:"2026-01-01"`
	End   string `form:"end" binding:"required" example:"2026-01-31"`
	Limit int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

// TopCustomersRequest 消费额排行查询参数
type TopCustomersRequest struct {
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=100"`
}
