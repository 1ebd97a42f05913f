package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/ecommerce/internal/application/order"
	"github.com/xiebiao/ecommerce/internal/domain/order"
	"github.com/xiebiao/ecommerce/internal/interface/http/dto"
	"github.com/xiebiao/ecommerce/internal/interface/http/middleware"
	"github.com/xiebiao/ecommerce/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createUseCase        *apporder.CreateOrderUseCase
	updateStatusUseCase  *apporder.UpdateStatusUseCase
	updatePaymentUseCase *apporder.UpdatePaymentUseCase
	cancelUseCase        *apporder.CancelOrderUseCase
	deleteUseCase        *apporder.DeleteOrderUseCase
	queryUseCase         *apporder.QueryOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createUseCase *apporder.CreateOrderUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
	updatePaymentUseCase *apporder.UpdatePaymentUseCase,
	cancelUseCase *apporder.CancelOrderUseCase,
	deleteUseCase *apporder.DeleteOrderUseCase,
	queryUseCase *apporder.QueryOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUseCase:        createUseCase,
		updateStatusUseCase:  updateStatusUseCase,
		updatePaymentUseCase: updatePaymentUseCase,
		cancelUseCase:        cancelUseCase,
		deleteUseCase:        deleteUseCase,
		queryUseCase:         queryUseCase,
	}
}

// Create 直接下单
// @Summary      直接下单
// @Description  不经购物车,按明细项直接创建订单并预留库存
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "下单信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "库存不足"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	items := make([]apporder.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, apporder.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID:            userID,
		Items:             items,
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
		PaymentMethod:     req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 查询订单详情
// @Summary      订单详情
// @Description  只能查看自己的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的订单ID")
		return
	}

	userID := middleware.MustGetUserID(c)

	o, err := h.queryUseCase.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, o)
}

// List 我的订单列表
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	orders, total, err := h.queryUseCase.ListByUser(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, orders, total, req.Page, req.PageSize)
}

// ListByStatus 按状态查询订单(运营侧)
// @Summary      按状态查询订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        status path int true "订单状态" Enums(1, 2, 3, 4)
// @Success      200 {object} response.Response
// @Router       /api/v1/orders/status/{status} [get]
func (h *OrderHandler) ListByStatus(c *gin.Context) {
	status, err := parseUintParam(c, "status")
	if err != nil || status < 1 || status > 4 {
		response.ErrorWithCode(c, 40900, "无效的订单状态")
		return
	}

	orders, err := h.queryUseCase.ListByStatus(c.Request.Context(), order.Status(status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, orders)
}

// ListByDateRange 按日期范围查询订单(运营侧)
// @Summary      按日期范围查询订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        start query string true "起始日期(YYYY-MM-DD)"
// @Param        end query string true "结束日期(YYYY-MM-DD)"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "日期范围非法"
// @Router       /api/v1/orders/date-range [get]
func (h *OrderHandler) ListByDateRange(c *gin.Context) {
	var req dto.ListOrdersByDateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的起始日期")
		return
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的结束日期")
		return
	}
	// 结束日期取当天末尾,保证当天的订单被包含
	end = end.Add(24*time.Hour - time.Nanosecond)

	orders, err := h.queryUseCase.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, orders)
}

// UpdateStatus 订单状态变更
// @Summary      订单状态变更
// @Description  发货时预留转实扣,取消时释放预留,取消单恢复时重新预留
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "非法的状态转换"
// @Router       /api/v1/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的订单ID")
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID: id,
		Target:  order.Status(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePayment 支付状态变更
// @Summary      支付状态变更
// @Description  支付状态独立于履约状态,变更不影响库存
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdatePaymentStatusRequest true "目标支付状态"
// @Success      200 {object} response.Response
// @Router       /api/v1/orders/{id}/payment [put]
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的订单ID")
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updatePaymentUseCase.Execute(c.Request.Context(), apporder.UpdatePaymentRequest{
		OrderID: id,
		Target:  order.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Cancel 取消订单
// @Summary      取消订单
// @Description  已发货/已送达的订单不允许取消;取消时释放全部库存预留
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "订单不可取消"
// @Failure      403 {object} response.Response "无权操作"
// @Router       /api/v1/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的订单ID")
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.cancelUseCase.Execute(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete 删除订单(运营侧)
// @Summary      删除订单
// @Description  持有预留的订单先释放库存再删除
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的订单ID")
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
