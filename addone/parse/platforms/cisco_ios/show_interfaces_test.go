package cisco_ios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseInterfaces 测试按接口分块与逐行字段提取
func TestParseInterfaces(t *testing.T) {
	lines := readFixtureLines(t, "show_interfaces.log")
	records := ParseInterfaces(lines)
	require.Len(t, records, 2, "样本中有2个接口")

	r := records[0]
	assert.Equal(t, "GigabitEthernet1/0/1", r.Get("name"))
	assert.Equal(t, "up", r.Get("status"))
	assert.Equal(t, "up (connected)", r.Get("line_protocol"))
	assert.Equal(t, "to-server-01", r.Get("description"))
	assert.Equal(t, "Full-duplex", r.Get("duplex"))
	assert.Equal(t, "1000M", r.Get("speed"))
	assert.Equal(t, "10/100/1000BaseTX", r.Get("media"))
	assert.Equal(t, "12", r.Get("output_drops"))
	assert.Equal(t, "2935000", r.Get("input_rate_bps"))
	assert.Equal(t, "354", r.Get("input_rate_pps"))
	assert.Equal(t, "123000", r.Get("output_rate_bps"))
	assert.Equal(t, "94", r.Get("output_rate_pps"))
	assert.Equal(t, "574374473", r.Get("input_packets"))
	assert.Equal(t, "346149475114", r.Get("input_bytes"))
	assert.Equal(t, "3", r.Get("input_errors"))
	assert.Equal(t, "2", r.Get("crc"))
	assert.Equal(t, "261929375", r.Get("output_packets"))
	assert.Equal(t, "46322736889", r.Get("output_bytes"))
	assert.Equal(t, "1", r.Get("output_errors"))

	r = records[1]
	assert.Equal(t, "TenGigabitEthernet1/1/1", r.Get("name"))
	assert.Equal(t, "administratively down", r.Get("status"))
	assert.Equal(t, "down (disabled)", r.Get("line_protocol"))
	assert.Equal(t, "", r.Get("description"), "该接口没有 Description 行")
	assert.Equal(t, "10G", r.Get("speed"))
	assert.Equal(t, "0", r.Get("output_drops"))
	assert.Equal(t, "0", r.Get("input_packets"))
}

// TestParseInterfacesTruncated 回显在块中途截断时也要产出当前接口
func TestParseInterfacesTruncated(t *testing.T) {
	lines := []string{
		"GigabitEthernet1/0/1 is up, line protocol is up (connected)",
		"  Description: uplink",
	}
	records := ParseInterfaces(lines)
	require.Len(t, records, 1)
	assert.Equal(t, "GigabitEthernet1/0/1", records[0].Get("name"))
	assert.Equal(t, "uplink", records[0].Get("description"))
}

// TestInterfaceFieldnamesOrder 表头顺序与字段定义顺序一致
func TestInterfaceFieldnamesOrder(t *testing.T) {
	require.Len(t, InterfaceFieldnames, 19)
	assert.Equal(t, "name", InterfaceFieldnames[0])
	assert.Equal(t, "output_errors", InterfaceFieldnames[18])
}
