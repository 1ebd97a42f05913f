package warehouse

import (
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// 仓库领域错误定义
var (
	// ErrWarehouseNotFound 仓库不存在
	ErrWarehouseNotFound = apperrors.New(apperrors.ErrCodeWarehouseNotFound, "仓库不存在")

	// ErrCodeDuplicate 仓库编码已存在
	ErrCodeDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "仓库编码已存在")
)
