package handler

import (
	"github.com/gin-gonic/gin"

	appaddress "github.com/xiebiao/ecommerce/internal/application/address"
	"github.com/xiebiao/ecommerce/internal/interface/http/dto"
	"github.com/xiebiao/ecommerce/internal/interface/http/middleware"
	"github.com/xiebiao/ecommerce/pkg/response"
)

// AddressHandler 收货地址HTTP处理器
type AddressHandler struct {
	addressUseCase *appaddress.AddressUseCase
}

// NewAddressHandler 创建地址处理器
func NewAddressHandler(addressUseCase *appaddress.AddressUseCase) *AddressHandler {
	return &AddressHandler{addressUseCase: addressUseCase}
}

// Create 新增地址
// @Summary      新增收货地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SaveAddressRequest true "地址信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.addressUseCase.Create(c.Request.Context(), appaddress.SaveAddressRequest{
		UserID:    userID,
		Receiver:  req.Receiver,
		Phone:     req.Phone,
		Province:  req.Province,
		City:      req.City,
		District:  req.District,
		Street:    req.Street,
		ZipCode:   req.ZipCode,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Update 更新地址
// @Summary      更新收货地址
// @Description  只能更新自己的地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "地址ID"
// @Param        request body dto.SaveAddressRequest true "地址信息"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /api/v1/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的地址ID")
		return
	}

	var req dto.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.addressUseCase.Update(c.Request.Context(), id, appaddress.SaveAddressRequest{
		UserID:    userID,
		Receiver:  req.Receiver,
		Phone:     req.Phone,
		Province:  req.Province,
		City:      req.City,
		District:  req.District,
		Street:    req.Street,
		ZipCode:   req.ZipCode,
		IsDefault: req.IsDefault,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// SetDefault 设为默认地址
// @Summary      设为默认地址
// @Description  同一用户同一时刻只有一个默认地址
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/addresses/{id}/default [post]
func (h *AddressHandler) SetDefault(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的地址ID")
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.addressUseCase.SetDefault(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete 删除地址
// @Summary      删除收货地址
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的地址ID")
		return
	}

	userID := middleware.MustGetUserID(c)

	if err := h.addressUseCase.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// List 地址列表
// @Summary      我的收货地址
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	addresses, err := h.addressUseCase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, addresses)
}
