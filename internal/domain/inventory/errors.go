package inventory

import (
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrRecordNotFound 库存记录不存在
	ErrRecordNotFound = apperrors.New(apperrors.ErrCodeInventoryNotFound, "库存记录不存在")

	// ErrDuplicateRecord 该商品在该仓库已有库存记录
	ErrDuplicateRecord = apperrors.New(apperrors.ErrCodeDuplicateEntry, "该商品在该仓库已存在库存记录")

	// ErrInvalidQuantity 操作数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "操作数量必须大于0")

	// ErrNegativeQuantity 调整后在库数量不能为负
	ErrNegativeQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "在库数量不能为负数")

	// ErrReservedExceedsQuantity 调整后在库数量不能低于已预留数量
	ErrReservedExceedsQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "在库数量不能低于已预留数量")

	// ErrInsufficientStock 可售数量不足,无法预留
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "可售库存不足")

	// ErrReleaseExceedsReserved 释放/确认数量超过已预留数量
	ErrReleaseExceedsReserved = apperrors.New(apperrors.ErrCodeInvalidParams, "释放数量不能超过已预留数量")

	// ErrVersionConflict 版本冲突(并发写侦测)
	ErrVersionConflict = apperrors.New(apperrors.ErrCodeBusinessError, "库存记录已被其他操作修改,请重试")
)
