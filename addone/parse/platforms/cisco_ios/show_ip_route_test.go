package cisco_ios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRoutes 测试各类路由行与携带状态的补全
func TestParseRoutes(t *testing.T) {
	lines := readFixtureLines(t, "show_ip_route.log")
	entries := ParseRoutes(lines)
	require.Len(t, entries, 8, "样本中有8条路由（含 ECMP 第二跳）")

	// 默认路由（自带掩码）
	assert.Equal(t, "S*", entries[0].Proto)
	assert.Equal(t, "0.0.0.0", entries[0].Addr)
	assert.Equal(t, 0, entries[0].Mask)
	assert.Equal(t, "10.245.2.2", entries[0].Gw)
	assert.Equal(t, "GigabitEthernet0/0", entries[0].Interface)

	// 直连路由：网关为空
	assert.Equal(t, "C", entries[1].Proto)
	assert.Equal(t, "10.245.2.0", entries[1].Addr)
	assert.Equal(t, 30, entries[1].Mask)
	assert.Equal(t, "", entries[1].Gw)

	// ECMP 第二跳：proto/addr/mask 来自上一条
	assert.Equal(t, "O", entries[5].Proto)
	assert.Equal(t, "10.245.12.0", entries[5].Addr)
	assert.Equal(t, 24, entries[5].Mask)
	assert.Equal(t, "10.245.3.2", entries[5].Gw)
	assert.Equal(t, "GigabitEthernet0/1", entries[5].Interface)

	// VLSM 小节头之后的路由行不带掩码，掩码取自小节头
	assert.Equal(t, "172.16.10.0", entries[6].Addr)
	assert.Equal(t, 24, entries[6].Mask)
	assert.Equal(t, "172.16.20.0", entries[7].Addr)
	assert.Equal(t, 24, entries[7].Mask)
}

// TestParseRoutesMaskUnknown 没有小节头时不带掩码的行保持占位值
func TestParseRoutesMaskUnknown(t *testing.T) {
	lines := []string{
		"O        172.16.10.0 [110/3] via 10.245.2.2, 3d01h, GigabitEthernet0/0",
	}
	entries := ParseRoutes(lines)
	require.Len(t, entries, 1)
	assert.Equal(t, maskUnknown, entries[0].Mask)
	assert.Equal(t, "", entries[0].Record().Get("mask"), "掩码未知时记录中置空")
}

// TestRouteEntryEqual 地址、掩码、网关一致即视为同一条路由
func TestRouteEntryEqual(t *testing.T) {
	a := NewRouteEntry("O", "10.0.1.0", 24, "10.0.0.1", "Vlan10")
	b := NewRouteEntry("S", "10.0.1.0", 24, "10.0.0.1", "Vlan99")
	c := NewRouteEntry("O", "10.0.1.0", 24, "10.0.0.2", "Vlan10")
	assert.True(t, a.Equal(b), "协议与接口不参与比较")
	assert.False(t, a.Equal(c), "网关不同则不相等")
}

// TestAddrToUint32 地址数值化用于排序
func TestAddrToUint32(t *testing.T) {
	assert.Equal(t, uint32(0x0a000100), addrToUint32("10.0.1.0"))
	assert.Equal(t, uint32(0xffffffff), addrToUint32("255.255.255.255"))
	assert.Equal(t, uint32(0), addrToUint32("bogus"))
	assert.True(t, NewRouteEntry("O", "10.0.1.0", 24, "", "").Less(NewRouteEntry("O", "10.0.2.0", 24, "", "")))
}

// TestDiffRoutes 两份路由表的差分
func TestDiffRoutes(t *testing.T) {
	before := ParseRoutes(readFixtureLines(t, "show_ip_route.log"))
	after := ParseRoutes(readFixtureLines(t, "show_ip_route_after.log"))

	diff := DiffRoutes(before, after)
	assert.Len(t, diff.Common, 6)

	// 网关变化视为一删一增
	removedAddrs := routeAddrs(diff.Removed)
	assert.Contains(t, removedAddrs, "172.16.10.0")
	assert.Contains(t, removedAddrs, "172.16.20.0")
	addedAddrs := routeAddrs(diff.Added)
	assert.Contains(t, addedAddrs, "172.16.10.0")
	assert.Contains(t, addedAddrs, "172.16.30.0")
}

func routeAddrs(entries []RouteEntry) []string {
	addrs := make([]string, 0, len(entries))
	for _, e := range entries {
		addrs = append(addrs, e.Addr)
	}
	return addrs
}

// TestRouteFilters 路由过滤器
func TestRouteFilters(t *testing.T) {
	entries := ParseRoutes(readFixtureLines(t, "show_ip_route.log"))

	proto, err := FilterRouteProto("^o$")
	require.NoError(t, err)
	assert.Len(t, FilterRoutes(entries, []RouteFilter{proto}), 5, "proto 过滤忽略大小写")

	mask, err := FilterRouteMask(30, "ge")
	require.NoError(t, err)
	assert.Len(t, FilterRoutes(entries, []RouteFilter{mask}), 2, "/30 与 /32")

	gw, err := FilterRouteGw("10.245.3.2")
	require.NoError(t, err)
	iface, err := FilterRouteInterface("gigabitethernet0/1")
	require.NoError(t, err)
	both := FilterRoutes(entries, []RouteFilter{gw, iface})
	require.Len(t, both, 1)
	assert.Equal(t, "10.245.12.0", both[0].Addr)

	_, err = FilterRouteMask(24, "between")
	assert.Error(t, err, "未知比较运算符")
}
