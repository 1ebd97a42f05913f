package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/ecommerce/internal/application/catalog"
	"github.com/xiebiao/ecommerce/internal/domain/catalog"
	"github.com/xiebiao/ecommerce/internal/interface/http/dto"
	"github.com/xiebiao/ecommerce/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	publishUseCase  *appcatalog.PublishProductUseCase
	queryUseCase    *appcatalog.QueryProductsUseCase
	updateUseCase   *appcatalog.UpdateProductUseCase
	categoryUseCase *appcatalog.CategoryUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	publishUseCase *appcatalog.PublishProductUseCase,
	queryUseCase *appcatalog.QueryProductsUseCase,
	updateUseCase *appcatalog.UpdateProductUseCase,
	categoryUseCase *appcatalog.CategoryUseCase,
) *ProductHandler {
	return &ProductHandler{
		publishUseCase:  publishUseCase,
		queryUseCase:    queryUseCase,
		updateUseCase:   updateUseCase,
		categoryUseCase: categoryUseCase,
	}
}

// Publish 发布商品
// @Summary      发布商品
// @Description  创建商品并上架,SKU全局唯一
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishProductRequest true "商品信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "SKU已存在"
// @Router       /api/v1/products [post]
func (h *ProductHandler) Publish(c *gin.Context) {
	var req dto.PublishProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.publishUseCase.Execute(c.Request.Context(), appcatalog.PublishProductRequest{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 查询商品详情
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	product, err := h.queryUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, product)
}

// List 商品列表
// @Summary      商品列表
// @Description  分页查询商品,支持关键词、分类过滤和排序
// @Tags         商品
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Param        keyword query string false "搜索关键词"
// @Param        category_id query int false "分类ID"
// @Param        sort_by query string false "排序方式" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	products, total, err := h.queryUseCase.List(c.Request.Context(), catalog.ListParams{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Keyword:    req.Keyword,
		CategoryID: req.CategoryID,
		SortBy:     req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, products, total, req.Page, req.PageSize)
}

// UpdateInfo 更新商品信息
// @Summary      更新商品信息
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdateProductRequest true "商品信息"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) UpdateInfo(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.updateUseCase.UpdateInfo(c.Request.Context(), appcatalog.UpdateInfoRequest{
		ProductID:   id,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// UpdatePrice 更新商品价格
// @Summary      更新商品价格
// @Description  更新原价和折扣价(单位:分)
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdatePriceRequest true "价格信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/products/{id}/price [put]
func (h *ProductHandler) UpdatePrice(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	var req dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.updateUseCase.UpdatePrice(c.Request.Context(), id, req.Price, req.DiscountPrice); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Deactivate 下架商品
// @Summary      下架商品
// @Description  下架后商品不可加入购物车和下单,已有订单不受影响
// @Tags         商品
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	if err := h.updateUseCase.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete 删除商品
// @Summary      删除商品
// @Description  软删除商品
// @Tags         商品
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	if err := h.updateUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/categories [post]
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.categoryUseCase.Create(c.Request.Context(), req.Name, req.Description, req.ParentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         商品
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/categories [get]
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, categories)
}

// parseUintParam 解析路径参数中的无符号整数
func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
