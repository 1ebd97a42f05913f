package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/ecommerce/internal/application/inventory"
	"github.com/xiebiao/ecommerce/internal/interface/http/dto"
	"github.com/xiebiao/ecommerce/pkg/response"
)

// InventoryHandler 库存HTTP处理器
type InventoryHandler struct {
	createUseCase    *appinventory.CreateRecordUseCase
	adjustUseCase    *appinventory.AdjustStockUseCase
	setStatusUseCase *appinventory.SetStatusUseCase
	queryUseCase     *appinventory.QueryRecordsUseCase
	deleteUseCase    *appinventory.DeleteRecordUseCase
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(
	createUseCase *appinventory.CreateRecordUseCase,
	adjustUseCase *appinventory.AdjustStockUseCase,
	setStatusUseCase *appinventory.SetStatusUseCase,
	queryUseCase *appinventory.QueryRecordsUseCase,
	deleteUseCase *appinventory.DeleteRecordUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		createUseCase:    createUseCase,
		adjustUseCase:    adjustUseCase,
		setStatusUseCase: setStatusUseCase,
		queryUseCase:     queryUseCase,
		deleteUseCase:    deleteUseCase,
	}
}

// Create 创建库存记录
// @Summary      创建库存记录
// @Description  为(商品,仓库)组合建立库存记录,组合全局唯一
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateInventoryRequest true "库存信息"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "仓库未启用"
// @Failure      409 {object} response.Response "记录已存在"
// @Router       /api/v1/inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appinventory.CreateRecordRequest{
		ProductID:        req.ProductID,
		WarehouseID:      req.WarehouseID,
		Quantity:         req.Quantity,
		ReorderThreshold: req.ReorderThreshold,
		ReorderQuantity:  req.ReorderQuantity,
		SKU:              req.SKU,
		BatchNumber:      req.BatchNumber,
		ExpiryDate:       req.ExpiryDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Adjust 调整库存数量
// @Summary      调整库存
// @Description  入库为正、出库/盘亏为负,不允许把数量调到已预留量之下
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "库存记录ID"
// @Param        request body dto.AdjustInventoryRequest true "调整量"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "调整后数量非法"
// @Failure      404 {object} response.Response "记录不存在"
// @Router       /api/v1/inventory/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的库存记录ID")
		return
	}

	var req dto.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.adjustUseCase.Execute(c.Request.Context(), appinventory.AdjustStockRequest{
		RecordID: id,
		Delta:    req.Delta,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SetStatus 停售/恢复
// @Summary      停售或恢复库存记录
// @Description  停售后该记录不再参与预留;恢复后状态按库存量自动推导
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "库存记录ID"
// @Param        request body dto.SetInventoryStatusRequest true "停售标记"
// @Success      200 {object} response.Response
// @Router       /api/v1/inventory/{id}/status [put]
func (h *InventoryHandler) SetStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的库存记录ID")
		return
	}

	var req dto.SetInventoryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.setStatusUseCase.Execute(c.Request.Context(), appinventory.SetStatusRequest{
		RecordID:     id,
		Discontinued: *req.Discontinued,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 查询库存记录
// @Summary      库存记录详情
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "库存记录ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "记录不存在"
// @Router       /api/v1/inventory/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的库存记录ID")
		return
	}

	record, err := h.queryUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, record)
}

// List 库存列表
// @Summary      库存列表
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	records, total, err := h.queryUseCase.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, records, total, req.Page, req.PageSize)
}

// ListByProduct 按商品查询库存
// @Summary      商品的全部库存记录
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/inventory/product/{id} [get]
func (h *InventoryHandler) ListByProduct(c *gin.Context) {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	records, err := h.queryUseCase.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, records)
}

// ListByWarehouse 按仓库查询库存
// @Summary      仓库的全部库存记录
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "仓库ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/inventory/warehouse/{id} [get]
func (h *InventoryHandler) ListByWarehouse(c *gin.Context) {
	warehouseID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的仓库ID")
		return
	}

	records, err := h.queryUseCase.ListByWarehouse(c.Request.Context(), warehouseID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, records)
}

// ListLowStock 低库存清单
// @Summary      低库存清单
// @Description  返回库存量不高于补货阈值的记录,按库存量升序
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	records, err := h.queryUseCase.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, records)
}

// Delete 删除库存记录
// @Summary      删除库存记录
// @Description  存在未释放预留的记录不允许删除
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "库存记录ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "存在未释放的预留"
// @Router       /api/v1/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的库存记录ID")
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
