package cisco_ios

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/showformatterpro/showformatterpro/addone/parse"
)

// show ip route 的回显没有统一的行格式，按优先级依次套用正则，
// 并携带可变状态（当前 proto/addr/mask）来补全两类省略信息：
//   - VLSM 小节头 "100.0.0.0/16 is subnetted, 63 subnets" 之后的路由行不带掩码
//   - ECMP 第二跳独立成行，只有 via 部分
//
// O    192.168.23.0/24 [110/2] via 192.168.13.3, 7w0d, Vlan13
//                      [110/2] via 192.168.12.2, 7w0d, Vlan12

// RouteFieldnames CSV 表头顺序
var RouteFieldnames = []string{"proto", "addr", "mask", "gw", "interface"}

// maskUnknown 路由行不带掩码且此前没有小节头时的占位值
const maskUnknown = -1

// RouteEntry IPv4 路由信息。省略 metric/distance/age
type RouteEntry struct {
	Proto     string
	Addr      string
	Mask      int
	Gw        string
	Interface string
	// Addr32 地址的数值表示，用于排序比较
	Addr32 uint32
}

// NewRouteEntry 构造路由条目并计算 Addr32
func NewRouteEntry(proto, addr string, mask int, gw, iface string) RouteEntry {
	return RouteEntry{
		Proto:     proto,
		Addr:      addr,
		Mask:      mask,
		Gw:        gw,
		Interface: iface,
		Addr32:    addrToUint32(addr),
	}
}

// Equal 地址、掩码、网关一致即视为同一条路由（忽略协议与接口）
func (e RouteEntry) Equal(o RouteEntry) bool {
	return e.Addr == o.Addr && e.Mask == o.Mask && e.Gw == o.Gw
}

// Less 按地址数值排序
func (e RouteEntry) Less(o RouteEntry) bool { return e.Addr32 < o.Addr32 }

func (e RouteEntry) String() string {
	return fmt.Sprintf("%s,%s,%d,via,%s,%s", e.Proto, e.Addr, e.Mask, e.Gw, e.Interface)
}

// Record 转换为通用记录。掩码未知时置空
func (e RouteEntry) Record() parse.Record {
	mask := ""
	if e.Mask != maskUnknown {
		mask = strconv.Itoa(e.Mask)
	}
	return parse.Record{
		"proto":     e.Proto,
		"addr":      e.Addr,
		"mask":      mask,
		"gw":        e.Gw,
		"interface": e.Interface,
	}
}

var (
	// 100.0.0.0/16 is subnetted, 63 subnets
	reRouteFixedMask = regexp.MustCompile(`((?:\d{1,3}\.){3}\d{1,3})/(\d{1,2}) is subnetted`)

	// 110.0.0.0/8 is variably subnetted, 7 subnets, 2 masks
	reRouteVariableMask = regexp.MustCompile(`((?:\d{1,3}\.){3}\d{1,3})/(\d{1,2}) is variably subnetted`)

	// S        110.0.0.0/8 is directly connected, Null0
	reRouteDirectlyConnected = regexp.MustCompile(`^(.*) ((?:\d{1,3}\.){3}\d{1,3})/(\d{1,2}) is directly connected,(.*)$`)

	// O        10.244.1.0/24 [110/2] via 10.245.11.2, 7w0d, Vlan111
	reRouteVariablePrefix = regexp.MustCompile(`^(.*) ((?:\d{1,3}\.){3}\d{1,3})/(\d{1,2}) \[\d+/\d+\] via ((?:\d{1,3}\.){3}\d{1,3}),.*,(.*)$`)

	// O E1     100.3.0.0 [110/122] via 10.245.2.2, 7w0d, Vlan102（掩码取自小节头）
	reRouteFixedPrefix = regexp.MustCompile(`^(.*) ((?:\d{1,3}\.){3}\d{1,3}) \[\d+/\d+\] via ((?:\d{1,3}\.){3}\d{1,3}),.*,(.*)$`)

	// 缩进的 [110/2] via 192.168.12.2, 7w0d, Vlan12（ECMP 第二跳）
	reRouteEcmp = regexp.MustCompile(`^\s+\[\d+/\d+\] via ((?:\d{1,3}\.){3}\d{1,3}),.*,(.*)$`)
)

// ParseRoutes 逐行扫描回显并产出路由条目
func ParseRoutes(lines []string) []RouteEntry {
	entries := make([]RouteEntry, 0)

	currentProto := ""
	currentAddr := ""
	currentMask := maskUnknown

	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")

		// VLSM 小节头：记住前缀与掩码，供后续不带掩码的行使用
		if m := reRouteFixedMask.FindStringSubmatch(line); m != nil {
			currentAddr = m[1]
			currentMask = mustAtoi(m[2])
			continue
		}

		// 可变长小节头：行内每条路由都自带掩码，无需携带状态
		if reRouteVariableMask.MatchString(line) {
			continue
		}

		if m := reRouteDirectlyConnected.FindStringSubmatch(line); m != nil {
			entries = append(entries, NewRouteEntry(
				strings.TrimSpace(m[1]), m[2], mustAtoi(m[3]), "", strings.TrimSpace(m[4])))
			continue
		}

		if m := reRouteVariablePrefix.FindStringSubmatch(line); m != nil {
			e := NewRouteEntry(
				strings.TrimSpace(m[1]), m[2], mustAtoi(m[3]), m[4], strings.TrimSpace(m[5]))
			currentProto = e.Proto
			currentAddr = e.Addr
			currentMask = e.Mask
			entries = append(entries, e)
			continue
		}

		if m := reRouteFixedPrefix.FindStringSubmatch(line); m != nil {
			e := NewRouteEntry(
				strings.TrimSpace(m[1]), m[2], currentMask, m[3], strings.TrimSpace(m[4]))
			currentProto = e.Proto
			currentAddr = e.Addr
			entries = append(entries, e)
			continue
		}

		if m := reRouteEcmp.FindStringSubmatch(line); m != nil {
			entries = append(entries, NewRouteEntry(
				currentProto, currentAddr, currentMask, m[1], strings.TrimSpace(m[2])))
			continue
		}
	}

	return entries
}

// RouteDiff 两份路由表的差分结果
type RouteDiff struct {
	Common  []RouteEntry
	Removed []RouteEntry
	Added   []RouteEntry
}

// DiffRoutes 以 Equal（addr+mask+gw）为准对比两份路由表
func DiffRoutes(before, after []RouteEntry) RouteDiff {
	var diff RouteDiff
	for _, e := range before {
		if containsRoute(after, e) {
			diff.Common = append(diff.Common, e)
		} else {
			diff.Removed = append(diff.Removed, e)
		}
	}
	for _, e := range after {
		if !containsRoute(before, e) {
			diff.Added = append(diff.Added, e)
		}
	}
	return diff
}

func containsRoute(entries []RouteEntry, target RouteEntry) bool {
	for _, e := range entries {
		if e.Equal(target) {
			return true
		}
	}
	return false
}

// RouteFilter 路由过滤器：命中返回 true
type RouteFilter func(RouteEntry) bool

// FilterRouteAddr 地址正则过滤
func FilterRouteAddr(query string) (RouteFilter, error) {
	re, err := regexp.Compile(query)
	if err != nil {
		return nil, err
	}
	return func(e RouteEntry) bool { return re.MatchString(e.Addr) }, nil
}

// FilterRouteProto 协议正则过滤（忽略大小写）
func FilterRouteProto(query string) (RouteFilter, error) {
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil, err
	}
	return func(e RouteEntry) bool { return re.MatchString(e.Proto) }, nil
}

// FilterRouteGw 网关正则过滤
func FilterRouteGw(query string) (RouteFilter, error) {
	re, err := regexp.Compile(query)
	if err != nil {
		return nil, err
	}
	return func(e RouteEntry) bool { return re.MatchString(e.Gw) }, nil
}

// FilterRouteInterface 接口正则过滤（忽略大小写）
func FilterRouteInterface(query string) (RouteFilter, error) {
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil, err
	}
	return func(e RouteEntry) bool { return re.MatchString(e.Interface) }, nil
}

// FilterRouteMask 掩码长度比较过滤，op 取 eq/lt/le/gt/ge，缺省 eq
func FilterRouteMask(masklen int, op string) (RouteFilter, error) {
	if op == "" {
		op = "eq"
	}
	switch op {
	case "eq":
		return func(e RouteEntry) bool { return e.Mask == masklen }, nil
	case "lt":
		return func(e RouteEntry) bool { return e.Mask < masklen }, nil
	case "le":
		return func(e RouteEntry) bool { return e.Mask <= masklen }, nil
	case "gt":
		return func(e RouteEntry) bool { return e.Mask > masklen }, nil
	case "ge":
		return func(e RouteEntry) bool { return e.Mask >= masklen }, nil
	default:
		return nil, fmt.Errorf("unknown mask operator %q", op)
	}
}

// MatchAllRoutes 依次应用全部过滤器，全部命中才返回 true
func MatchAllRoutes(e RouteEntry, filters []RouteFilter) bool {
	for _, f := range filters {
		if !f(e) {
			return false
		}
	}
	return true
}

// FilterRoutes 返回命中全部过滤器的条目
func FilterRoutes(entries []RouteEntry, filters []RouteFilter) []RouteEntry {
	if len(filters) == 0 {
		return entries
	}
	out := make([]RouteEntry, 0, len(entries))
	for _, e := range entries {
		if MatchAllRoutes(e, filters) {
			out = append(out, e)
		}
	}
	return out
}

func addrToUint32(addr string) uint32 {
	var v uint32
	for _, part := range strings.SplitN(addr, ".", 4) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0
		}
		v = v<<8 | uint32(n&0xff)
	}
	return v
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return maskUnknown
	}
	return n
}
