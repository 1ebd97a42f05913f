package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRecord 构造一条已入库的测试记录
func newTestRecord(id uint, quantity int) *Record {
	r, _ := NewRecord(1, id, quantity, 0, "")
	r.ID = id
	return r
}

func TestAllocate(t *testing.T) {
	t.Run("单仓足量时只占一条记录", func(t *testing.T) {
		records := []*Record{newTestRecord(1, 10), newTestRecord(2, 10)}

		plans, err := Allocate(records, 5)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, uint(1), plans[0].InventoryID)
		assert.Equal(t, 5, plans[0].Quantity)
		assert.Equal(t, 5, records[0].ReservedQuantity)
		assert.Equal(t, 0, records[1].ReservedQuantity)
	})

	t.Run("跨仓贪心分配", func(t *testing.T) {
		records := []*Record{newTestRecord(1, 3), newTestRecord(2, 10)}

		plans, err := Allocate(records, 7)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, AllocationPlan{InventoryID: 1, Quantity: 3}, plans[0])
		assert.Equal(t, AllocationPlan{InventoryID: 2, Quantity: 4}, plans[1])
	})

	t.Run("已有预留只占剩余可售量", func(t *testing.T) {
		r1 := newTestRecord(1, 10)
		require.NoError(t, r1.Reserve(8))
		r2 := newTestRecord(2, 10)

		plans, err := Allocate([]*Record{r1, r2}, 5)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, 2, plans[0].Quantity)
		assert.Equal(t, 3, plans[1].Quantity)
	})

	t.Run("跳过停售记录", func(t *testing.T) {
		r1 := newTestRecord(1, 10)
		r1.Discontinue()
		r2 := newTestRecord(2, 10)

		plans, err := Allocate([]*Record{r1, r2}, 5)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, uint(2), plans[0].InventoryID)
		assert.Equal(t, 0, r1.ReservedQuantity)
	})

	t.Run("全部仓加起来不够返回库存不足", func(t *testing.T) {
		records := []*Record{newTestRecord(1, 2), newTestRecord(2, 2)}

		_, err := Allocate(records, 5)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("数量必须为正", func(t *testing.T) {
		_, err := Allocate([]*Record{newTestRecord(1, 10)}, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("恰好用尽全部可售量", func(t *testing.T) {
		records := []*Record{newTestRecord(1, 2), newTestRecord(2, 3)}

		plans, err := Allocate(records, 5)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, 0, records[0].AvailableQuantity())
		assert.Equal(t, 0, records[1].AvailableQuantity())
	})
}
