package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      Status
	}{
		{"数量为0是缺货", 0, 10, StatusOutOfStock},
		{"数量为负是缺货", -1, 0, StatusOutOfStock},
		{"等于阈值是低库存", 10, 10, StatusLowStock},
		{"低于阈值是低库存", 3, 10, StatusLowStock},
		{"高于阈值是有货", 11, 10, StatusAvailable},
		{"未设阈值时只要有货就是有货", 1, 0, StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.quantity, tt.threshold))
		})
	}
}

func TestNewRecord(t *testing.T) {
	t.Run("初始状态由数量和阈值推导", func(t *testing.T) {
		r, err := NewRecord(1, 1, 5, 10, "SKU-001")
		require.NoError(t, err)
		assert.Equal(t, StatusLowStock, r.Status)
		assert.Equal(t, 0, r.ReservedQuantity)
		assert.Equal(t, 1, r.Version)
	})

	t.Run("初始数量不能为负", func(t *testing.T) {
		_, err := NewRecord(1, 1, -1, 0, "")
		assert.ErrorIs(t, err, ErrNegativeQuantity)
	})
}

func TestRecord_Adjust(t *testing.T) {
	t.Run("入库增加数量并刷新状态", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 0, 10, "")
		require.Equal(t, StatusOutOfStock, r.Status)

		require.NoError(t, r.Adjust(20))
		assert.Equal(t, 20, r.Quantity)
		assert.Equal(t, StatusAvailable, r.Status)
	})

	t.Run("出库到阈值以下变为低库存", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 20, 10, "")
		require.NoError(t, r.Adjust(-12))
		assert.Equal(t, 8, r.Quantity)
		assert.Equal(t, StatusLowStock, r.Status)
	})

	t.Run("调整到负数被拒绝且状态不变", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 5, 0, "")
		err := r.Adjust(-6)
		assert.ErrorIs(t, err, ErrNegativeQuantity)
		assert.Equal(t, 5, r.Quantity)
		assert.Equal(t, StatusAvailable, r.Status)
	})

	t.Run("不能调整到已预留数量之下", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 0, "")
		require.NoError(t, r.Reserve(6))

		err := r.Adjust(-5)
		assert.ErrorIs(t, err, ErrReservedExceedsQuantity)
		assert.Equal(t, 10, r.Quantity)

		// 恰好调整到预留量是允许的
		require.NoError(t, r.Adjust(-4))
		assert.Equal(t, 6, r.Quantity)
		assert.Equal(t, 0, r.AvailableQuantity())
	})

	t.Run("每次成功调整递增版本号", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 0, "")
		v := r.Version
		require.NoError(t, r.Adjust(1))
		assert.Equal(t, v+1, r.Version)
	})
}

func TestRecord_ReserveReleaseConfirm(t *testing.T) {
	t.Run("预留只占用可售数量", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 0, "")
		require.NoError(t, r.Reserve(4))
		assert.Equal(t, 10, r.Quantity)
		assert.Equal(t, 4, r.ReservedQuantity)
		assert.Equal(t, 6, r.AvailableQuantity())
		// 预留不改变状态推导依据(在库数量)
		assert.Equal(t, StatusAvailable, r.Status)
	})

	t.Run("预留超过可售数量被拒绝", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 0, "")
		require.NoError(t, r.Reserve(8))
		err := r.Reserve(3)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 8, r.ReservedQuantity)
	})

	t.Run("预留数量必须为正", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 0, "")
		assert.ErrorIs(t, r.Reserve(0), ErrInvalidQuantity)
		assert.ErrorIs(t, r.Reserve(-1), ErrInvalidQuantity)
	})

	t.Run("释放恢复可售数量", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 0, "")
		require.NoError(t, r.Reserve(5))
		require.NoError(t, r.Release(3))
		assert.Equal(t, 2, r.ReservedQuantity)
		assert.Equal(t, 8, r.AvailableQuantity())
	})

	t.Run("释放超过已预留被拒绝", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 0, "")
		require.NoError(t, r.Reserve(2))
		assert.ErrorIs(t, r.Release(3), ErrReleaseExceedsReserved)
	})

	t.Run("确认同步扣减在库与预留", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 0, "")
		require.NoError(t, r.Reserve(4))
		require.NoError(t, r.Confirm(4))
		assert.Equal(t, 6, r.Quantity)
		assert.Equal(t, 0, r.ReservedQuantity)
		assert.Equal(t, 6, r.AvailableQuantity())
	})

	t.Run("确认后库存清零状态变为缺货", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 3, 0, "")
		require.NoError(t, r.Reserve(3))
		require.NoError(t, r.Confirm(3))
		assert.Equal(t, 0, r.Quantity)
		assert.Equal(t, StatusOutOfStock, r.Status)
	})
}

func TestRecord_Discontinue(t *testing.T) {
	t.Run("停售是人工覆盖,推导不会清除", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 0, "")
		r.Discontinue()
		assert.Equal(t, StatusDiscontinued, r.Status)

		// 任何数量变更都不会把停售改回推导状态
		require.NoError(t, r.Adjust(100))
		assert.Equal(t, StatusDiscontinued, r.Status)
	})

	t.Run("恢复后重新按数量推导", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 3, 10, "")
		r.Discontinue()
		r.Reinstate()
		assert.Equal(t, StatusLowStock, r.Status)
	})
}

func TestRecord_IsLowStock(t *testing.T) {
	t.Run("未设置阈值永远不算低库存", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 0, 0, "")
		assert.False(t, r.IsLowStock())
	})

	t.Run("等于阈值算低库存", func(t *testing.T) {
		r, _ := NewRecord(1, 1, 10, 10, "")
		assert.True(t, r.IsLowStock())
	})
}
