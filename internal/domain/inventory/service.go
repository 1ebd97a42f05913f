package inventory

// AllocationPlan 一次预留在单条库存记录上的占用量
type AllocationPlan struct {
	InventoryID uint
	Quantity    int
}

// Allocate 在多条库存记录上贪心分配预留
// 设计说明:
// 1. records必须是同一商品、已被FOR UPDATE锁定的记录,且按ID升序(与加锁顺序一致)
// 2. 跳过停售记录;从第一条可用记录开始占用,不足再占下一条
// 3. 全部记录加起来仍不够时返回ErrInsufficientStock,此前对records的修改
//    由调用方随事务回滚丢弃
func Allocate(records []*Record, amount int) ([]AllocationPlan, error) {
	if amount <= 0 {
		return nil, ErrInvalidQuantity
	}

	var plans []AllocationPlan
	remaining := amount
	for _, r := range records {
		if remaining == 0 {
			break
		}
		if r.Status == StatusDiscontinued {
			continue
		}
		available := r.AvailableQuantity()
		if available <= 0 {
			continue
		}

		take := remaining
		if take > available {
			take = available
		}
		if err := r.Reserve(take); err != nil {
			return nil, err
		}
		plans = append(plans, AllocationPlan{InventoryID: r.ID, Quantity: take})
		remaining -= take
	}

	if remaining > 0 {
		return nil, ErrInsufficientStock
	}
	return plans, nil
}
