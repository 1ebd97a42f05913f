package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	appanalytics "github.com/xiebiao/ecommerce/internal/application/analytics"
	"github.com/xiebiao/ecommerce/internal/interface/http/dto"
	"github.com/xiebiao/ecommerce/pkg/response"
)

var (
	errInvalidStartDate = errors.New("无效的起始日期")
	errInvalidEndDate   = errors.New("无效的结束日期")
)

// AnalyticsHandler 经营统计HTTP处理器(只读报表)
type AnalyticsHandler struct {
	useCase *appanalytics.AnalyticsUseCase
}

// NewAnalyticsHandler 创建统计处理器
func NewAnalyticsHandler(useCase *appanalytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{useCase: useCase}
}

// OrderSummary 区间订单汇总
// @Summary      区间订单汇总
// @Description  订单数、营收、客单价(已取消订单不计)
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Param        start query string true "起始日期(YYYY-MM-DD)"
// @Param        end query string true "结束日期(YYYY-MM-DD)"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "日期范围非法"
// @Router       /api/v1/analytics/orders/summary [get]
func (h *AnalyticsHandler) OrderSummary(c *gin.Context) {
	var req dto.StatsDateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	start, end, err := parseStatsRange(req.Start, req.End)
	if err != nil {
		response.ErrorWithCode(c, 40900, err.Error())
		return
	}

	summary, err := h.useCase.OrderSummary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, summary)
}

// OrderCountByStatus 按履约状态统计订单数
// @Summary      按状态统计订单
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/analytics/orders/status-count [get]
func (h *AnalyticsHandler) OrderCountByStatus(c *gin.Context) {
	counts, err := h.useCase.OrderCountByStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"list": counts})
}

// TopSellingProducts 区间热销商品排行
// @Summary      热销商品排行
// @Description  按销量降序,默认前10
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Param        start query string true "起始日期(YYYY-MM-DD)"
// @Param        end query string true "结束日期(YYYY-MM-DD)"
// @Param        limit query int false "返回条数(默认10,最多100)"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "日期范围非法"
// @Router       /api/v1/analytics/products/top [get]
func (h *AnalyticsHandler) TopSellingProducts(c *gin.Context) {
	var req dto.TopProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	start, end, err := parseStatsRange(req.Start, req.End)
	if err != nil {
		response.ErrorWithCode(c, 40900, err.Error())
		return
	}

	products, err := h.useCase.TopSellingProducts(c.Request.Context(), start, end, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"list": products})
}

// TopCustomers 消费额排行
// @Summary      买家消费排行
// @Description  按累计消费额降序,默认前10
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "返回条数(默认10,最多100)"
// @Success      200 {object} response.Response
// @Router       /api/v1/analytics/customers/top [get]
func (h *AnalyticsHandler) TopCustomers(c *gin.Context) {
	var req dto.TopCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	customers, err := h.useCase.TopCustomers(c.Request.Context(), req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"list": customers})
}

// WarehouseSummary 分仓库存汇总
// @Summary      分仓库存汇总
// @Description  每个仓库的在库商品种数、总量与预留量
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/analytics/inventory/warehouse-summary [get]
func (h *AnalyticsHandler) WarehouseSummary(c *gin.Context) {
	summaries, err := h.useCase.WarehouseSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"list": summaries})
}

// parseStatsRange 解析统计日期区间,结束日期取当天末尾
func parseStatsRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errInvalidStartDate
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errInvalidEndDate
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}
