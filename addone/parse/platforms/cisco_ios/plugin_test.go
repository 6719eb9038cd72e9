package cisco_ios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showformatterpro/showformatterpro/addone/parse"
)

// TestPluginDispatch 命令到解析函数的分发（含缩写变体）
func TestPluginDispatch(t *testing.T) {
	p := &Plugin{}

	cases := []struct {
		command string
		table   string
	}{
		{"show cdp neighbors", "cdp_neighbors"},
		{"show cdp nei", "cdp_neighbors"},
		{"show interfaces", "interface_details"},
		{"show interfaces status", "interface_status"},
		{"show int status", "interface_status"},
		{"Show IP Route", "route_entries"},
		{"show logging", "syslog_messages"},
		{"show log", "syslog_messages"},
	}
	for _, c := range cases {
		out, err := p.Parse(parse.ParseContext{Platform: "cisco_ios", Command: c.command}, nil)
		require.NoError(t, err, c.command)
		assert.Equal(t, c.table, out.Table, c.command)
		assert.NotEmpty(t, out.Fieldnames, c.command)
	}
}

// TestPluginUnsupportedCommand 未支持的命令返回哨兵错误
func TestPluginUnsupportedCommand(t *testing.T) {
	p := &Plugin{}
	_, err := p.Parse(parse.ParseContext{Platform: "cisco_ios", Command: "show version"}, nil)
	assert.ErrorIs(t, err, parse.ErrUnsupportedCommand)
}

// TestPluginRegistered init 时注册到插件表
func TestPluginRegistered(t *testing.T) {
	assert.Equal(t, "cisco_ios", parse.Get("cisco_ios").Name())
	assert.Len(t, (&Plugin{}).Commands(), 5)
}
