package handler

import (
	"github.com/gin-gonic/gin"

	appcheckout "github.com/xiebiao/ecommerce/internal/application/checkout"
	"github.com/xiebiao/ecommerce/internal/interface/http/dto"
	"github.com/xiebiao/ecommerce/internal/interface/http/middleware"
	"github.com/xiebiao/ecommerce/pkg/response"
)

// CheckoutHandler 结算HTTP处理器
type CheckoutHandler struct {
	checkoutUseCase *appcheckout.CheckoutUseCase
	couponUseCase   *appcheckout.CouponUseCase
}

// NewCheckoutHandler 创建结算处理器
func NewCheckoutHandler(
	checkoutUseCase *appcheckout.CheckoutUseCase,
	couponUseCase *appcheckout.CouponUseCase,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
		couponUseCase:   couponUseCase,
	}
}

// Checkout 购物车结算
// @Summary      购物车结算
// @Description  把当前购物车一次性转成订单:锁定库存、预留、建单、清空购物车,全部在一个事务内完成
// @Tags         结算
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "结算信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "购物车为空/商品已下架/库存不足"
// @Failure      403 {object} response.Response "地址不属于当前用户"
// @Router       /api/v1/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), appcheckout.CheckoutRequest{
		UserID:            userID,
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

// LookupCoupon 查询优惠券
// @Summary      查询优惠券
// @Tags         结算
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "优惠券码"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "优惠券无效"
// @Router       /api/v1/coupons/{code} [get]
func (h *CheckoutHandler) LookupCoupon(c *gin.Context) {
	coupon, err := h.couponUseCase.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, coupon)
}
