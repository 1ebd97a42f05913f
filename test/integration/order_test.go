package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderFixture 下单测试夹具：卖家铺货，买家直接下单
type orderFixture struct {
	token       string
	productID   uint
	inventoryID uint
	addressID   uint
}

// newOrderFixture 准备一个商品(库存stock件,单价1000分)并返回买家Token
func newOrderFixture(t *testing.T, stock int) *orderFixture {
	t.Helper()

	_, token := RegisterTestUser(t, "order")
	warehouseID := CreateTestWarehouse(t, token)
	productID := PublishTestProduct(t, token, "下单测试商品", 1000)
	inventoryID := CreateTestInventory(t, token, productID, warehouseID, stock)
	addressID := CreateTestAddress(t, token)

	return &orderFixture{
		token:       token,
		productID:   productID,
		inventoryID: inventoryID,
		addressID:   addressID,
	}
}

// createOrder 直接下单(不经购物车),返回响应
func (f *orderFixture) createOrder(t *testing.T, quantity int) *Response {
	t.Helper()
	return PostJSON(t, BaseURL+"/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": f.productID, "quantity": quantity},
		},
		"shipping_address_id": f.addressID,
		"payment_method":      "alipay",
	}, f.token)
}

// inventory 查询夹具库存记录的当前快照
func (f *orderFixture) inventory(t *testing.T) InventoryData {
	t.Helper()
	resp := GetJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, f.inventoryID), f.token)
	require.Equal(t, 0, resp.Code, "查询库存失败: %s", resp.Message)

	var inv InventoryData
	require.NoError(t, json.Unmarshal(resp.Data, &inv))
	return inv
}

// TestOrderCreate 测试直接下单
func TestOrderCreate(t *testing.T) {
	t.Run("正常下单并预留库存", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		resp := f.createOrder(t, 3)
		require.Equal(t, 0, resp.Code, "下单应该成功: %s", resp.Message)

		var data OrderData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.OrderID)
		// 1000*3 + 运费(500+50*3) = 3650分
		assert.Equal(t, int64(3650), data.TotalAmount)

		// 下单只预留不扣减：总量不变，可用量减少
		inv := f.inventory(t)
		assert.Equal(t, 10, inv.Quantity, "下单后总量不应变化")
		assert.Equal(t, 3, inv.ReservedQuantity, "预留量应等于购买量")
		assert.Equal(t, 7, inv.AvailableQuantity)

		t.Logf("✓ 下单成功，订单号: %s，库存 10/预留3", data.OrderNo)
	})

	t.Run("未登录不能下单", func(t *testing.T) {
		f := newOrderFixture(t, 10)

		resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"items": []map[string]interface{}{
				{"product_id": f.productID, "quantity": 1},
			},
			"shipping_address_id": f.addressID,
		}, "")
		assert.NotEqual(t, 0, resp.Code, "未登录应该失败")

		t.Logf("✓ 未登录正确被拒绝: %s", resp.Message)
	})

	t.Run("可用量不足应失败", func(t *testing.T) {
		f := newOrderFixture(t, 5)

		require.Equal(t, 0, f.createOrder(t, 3).Code, "第一单应该成功")

		// 剩余可用2件，再买3件应失败
		resp := f.createOrder(t, 3)
		assert.NotEqual(t, 0, resp.Code, "可用量不足应该失败")

		inv := f.inventory(t)
		assert.Equal(t, 3, inv.ReservedQuantity, "失败的下单不应改变预留量")

		t.Logf("✓ 可用量不足正确返回错误: %s", resp.Message)
	})
}

// TestOrderStatusFlow 测试订单状态机与库存联动
func TestOrderStatusFlow(t *testing.T) {
	orderID := func(t *testing.T, f *orderFixture, quantity int) uint {
		resp := f.createOrder(t, quantity)
		require.Equal(t, 0, resp.Code, "下单失败: %s", resp.Message)
		var data OrderData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		return data.OrderID
	}

	updateStatus := func(t *testing.T, f *orderFixture, id uint, status int) *Response {
		return PutJSON(t, fmt.Sprintf("%s/orders/%d/status", BaseURL, id),
			map[string]interface{}{"status": status}, f.token)
	}

	t.Run("发货后预留转为实际扣减", func(t *testing.T) {
		f := newOrderFixture(t, 10)
		id := orderID(t, f, 3)

		resp := updateStatus(t, f, id, 2)
		require.Equal(t, 0, resp.Code, "发货应该成功: %s", resp.Message)

		inv := f.inventory(t)
		assert.Equal(t, 7, inv.Quantity, "发货后总量应扣减")
		assert.Equal(t, 0, inv.ReservedQuantity, "发货后预留应清零")
		assert.Equal(t, 7, inv.AvailableQuantity, "可用量不变")

		t.Logf("✓ 发货成功，库存 10→7，预留 3→0")
	})

	t.Run("取消后释放预留", func(t *testing.T) {
		f := newOrderFixture(t, 10)
		id := orderID(t, f, 3)

		resp := PostJSON(t, fmt.Sprintf("%s/orders/%d/cancel", BaseURL, id), nil, f.token)
		require.Equal(t, 0, resp.Code, "取消应该成功: %s", resp.Message)

		inv := f.inventory(t)
		assert.Equal(t, 10, inv.Quantity, "取消不应改变总量")
		assert.Equal(t, 0, inv.ReservedQuantity, "取消后预留应释放")

		t.Logf("✓ 取消成功，预留已释放")
	})

	t.Run("已取消订单恢复时重新预留", func(t *testing.T) {
		f := newOrderFixture(t, 10)
		id := orderID(t, f, 3)

		require.Equal(t, 0,
			PostJSON(t, fmt.Sprintf("%s/orders/%d/cancel", BaseURL, id), nil, f.token).Code)

		resp := updateStatus(t, f, id, 1)
		require.Equal(t, 0, resp.Code, "恢复应该成功: %s", resp.Message)

		inv := f.inventory(t)
		assert.Equal(t, 3, inv.ReservedQuantity, "恢复后应重新预留")

		t.Logf("✓ 订单恢复成功，库存重新预留")
	})

	t.Run("发货后不能取消", func(t *testing.T) {
		f := newOrderFixture(t, 10)
		id := orderID(t, f, 2)

		require.Equal(t, 0, updateStatus(t, f, id, 2).Code)

		resp := PostJSON(t, fmt.Sprintf("%s/orders/%d/cancel", BaseURL, id), nil, f.token)
		assert.NotEqual(t, 0, resp.Code, "已发货订单不能取消")

		t.Logf("✓ 已发货订单取消正确被拒绝: %s", resp.Message)
	})

	t.Run("非法状态跳转被拒绝", func(t *testing.T) {
		f := newOrderFixture(t, 10)
		id := orderID(t, f, 2)

		// 处理中不能直接送达
		resp := updateStatus(t, f, id, 3)
		assert.NotEqual(t, 0, resp.Code, "处理中不能直接送达")

		inv := f.inventory(t)
		assert.Equal(t, 2, inv.ReservedQuantity, "失败的跳转不应触碰库存")

		t.Logf("✓ 非法跳转正确被拒绝: %s", resp.Message)
	})

	t.Run("支付状态独立流转", func(t *testing.T) {
		f := newOrderFixture(t, 10)
		id := orderID(t, f, 1)

		resp := PutJSON(t, fmt.Sprintf("%s/orders/%d/payment", BaseURL, id),
			map[string]interface{}{"payment_status": 2}, f.token)
		require.Equal(t, 0, resp.Code, "支付成功应该被接受: %s", resp.Message)

		resp = PutJSON(t, fmt.Sprintf("%s/orders/%d/payment", BaseURL, id),
			map[string]interface{}{"payment_status": 4}, f.token)
		assert.Equal(t, 0, resp.Code, "已支付可以退款: %s", resp.Message)

		t.Logf("✓ 支付轴流转: 待支付→已支付→已退款")
	})
}

// TestOrderQuery 测试订单查询
func TestOrderQuery(t *testing.T) {
	f := newOrderFixture(t, 20)

	resp := f.createOrder(t, 2)
	require.Equal(t, 0, resp.Code)
	var created OrderData
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	t.Run("查询订单详情", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/orders/%d", BaseURL, created.OrderID), f.token)
		require.Equal(t, 0, resp.Code, "查询详情失败: %s", resp.Message)

		var detail struct {
			OrderNo       string `json:"order_no"`
			Status        string `json:"status"`
			PaymentStatus string `json:"payment_status"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &detail))
		assert.Equal(t, created.OrderNo, detail.OrderNo)
		assert.Equal(t, "处理中", detail.Status)
		assert.Equal(t, "待支付", detail.PaymentStatus)

		t.Logf("✓ 订单详情查询成功: %s", detail.OrderNo)
	})

	t.Run("他人订单不可见", func(t *testing.T) {
		_, otherToken := RegisterTestUser(t, "peeker")
		resp := GetJSON(t, fmt.Sprintf("%s/orders/%d", BaseURL, created.OrderID), otherToken)
		assert.NotEqual(t, 0, resp.Code, "他人订单应该不可见")

		t.Logf("✓ 他人订单正确被隐藏: %s", resp.Message)
	})

	t.Run("按状态查询", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/orders/status/1?page=1&page_size=10", f.token)
		assert.Equal(t, 0, resp.Code, "按状态查询失败: %s", resp.Message)

		t.Logf("✓ 按状态查询成功")
	})
}
