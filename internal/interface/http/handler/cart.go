package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/ecommerce/internal/application/cart"
	"github.com/xiebiao/ecommerce/internal/interface/http/dto"
	"github.com/xiebiao/ecommerce/internal/interface/http/middleware"
	"github.com/xiebiao/ecommerce/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	cartUseCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  同一商品重复加入时数量累加
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "商品与数量"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "商品已下架"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.cartUseCase.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// UpdateItem 调整条目数量
// @Summary      调整购物车条目数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "购物车条目ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的条目ID")
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.cartUseCase.UpdateItem(c.Request.Context(), userID, id, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// RemoveItem 移除条目
// @Summary      移除购物车条目
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "购物车条目ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的条目ID")
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.cartUseCase.RemoveItem(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.cartUseCase.Clear(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetCart 查看购物车
// @Summary      查看购物车
// @Description  按当前售价实时计算小计和总额,已下架商品标记为不可购买
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	view, err := h.cartUseCase.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}
