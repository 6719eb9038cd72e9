package cisco_ios

import (
	"strings"

	"github.com/showformatterpro/showformatterpro/addone/parse"
)

// Plugin 为 cisco_ios 平台解析插件
type Plugin struct{}

func (p *Plugin) Name() string { return "cisco_ios" }

// Commands 返回具备格式化支持的 Cisco IOS 命令
func (p *Plugin) Commands() []string {
	return []string{
		"show cdp neighbors",
		"show interfaces",
		"show interfaces status",
		"show ip route",
		"show logging",
	}
}

// Parse 按命令分发到对应的文件级处理函数
func (p *Plugin) Parse(ctx parse.ParseContext, lines []string) (parse.ParseOutput, error) {
	out := parse.ParseOutput{Platform: ctx.Platform, Command: ctx.Command}
	cmd := strings.ToLower(strings.TrimSpace(ctx.Command))
	switch cmd {
	case "show cdp neighbors", "show cdp neighbor", "show cdp nei":
		out.Table = "cdp_neighbors"
		out.Fieldnames = CdpNeighborFieldnames
		out.Records = ParseCdpNeighbors(lines)
		return out, nil

	case "show interfaces status", "show interface status", "show int status":
		out.Table = "interface_status"
		out.Fieldnames = InterfaceStatusFieldnames
		out.Records = ParseInterfacesStatus(lines)
		return out, nil

	case "show interfaces", "show interface":
		out.Table = "interface_details"
		out.Fieldnames = InterfaceFieldnames
		out.Records = ParseInterfaces(lines)
		return out, nil

	case "show ip route":
		out.Table = "route_entries"
		out.Fieldnames = RouteFieldnames
		for _, e := range ParseRoutes(lines) {
			out.Records = append(out.Records, e.Record())
		}
		return out, nil

	case "show logging", "show log":
		out.Table = "syslog_messages"
		out.Fieldnames = SyslogFieldnames
		out.Records = ParseLogging(lines)
		return out, nil

	default:
		return out, parse.ErrUnsupportedCommand
	}
}

func init() { parse.Register("cisco_ios", &Plugin{}) }
