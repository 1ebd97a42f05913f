package handler

import (
	"github.com/gin-gonic/gin"

	appwarehouse "github.com/xiebiao/ecommerce/internal/application/warehouse"
	"github.com/xiebiao/ecommerce/internal/interface/http/dto"
	"github.com/xiebiao/ecommerce/pkg/response"
)

// WarehouseHandler 仓库HTTP处理器
type WarehouseHandler struct {
	warehouseUseCase *appwarehouse.WarehouseUseCase
}

// NewWarehouseHandler 创建仓库处理器
func NewWarehouseHandler(warehouseUseCase *appwarehouse.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{warehouseUseCase: warehouseUseCase}
}

// Create 创建仓库
// @Summary      创建仓库
// @Description  仓库编码全局唯一
// @Tags         仓库
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateWarehouseRequest true "仓库信息"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "编码已存在"
// @Router       /api/v1/warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req dto.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.warehouseUseCase.Create(c.Request.Context(), req.Code, req.Name, req.Location)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 查询仓库
// @Summary      仓库详情
// @Tags         仓库
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "仓库ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "仓库不存在"
// @Router       /api/v1/warehouses/{id} [get]
func (h *WarehouseHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的仓库ID")
		return
	}

	warehouse, err := h.warehouseUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, warehouse)
}

// List 仓库列表
// @Summary      仓库列表
// @Tags         仓库
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	warehouses, err := h.warehouseUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, warehouses)
}

// SetActive 启用/停用仓库
// @Summary      启用或停用仓库
// @Description  停用后仓库不能再建新库存记录,已有库存不受影响
// @Tags         仓库
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "仓库ID"
// @Param        request body dto.SetWarehouseActiveRequest true "启用标记"
// @Success      200 {object} response.Response
// @Router       /api/v1/warehouses/{id}/active [put]
func (h *WarehouseHandler) SetActive(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的仓库ID")
		return
	}

	var req dto.SetWarehouseActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.warehouseUseCase.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
