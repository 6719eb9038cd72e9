package cisco_ios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLogging 测试 syslog 行的字段提取，非日志行全部跳过
func TestParseLogging(t *testing.T) {
	lines := readFixtureLines(t, "show_logging.log")
	records := ParseLogging(lines)
	require.Len(t, records, 4, "样本中有4条日志")

	r := records[0]
	assert.Equal(t, "May 30 10:44:17.780", r.Get("date"))
	assert.Equal(t, "LINK", r.Get("facility"))
	assert.Equal(t, "3", r.Get("severity"))
	assert.Equal(t, "UPDOWN", r.Get("mnemonic"))
	assert.Equal(t, "Interface GigabitEthernet1/0/1, changed state to up", r.Get("description"))

	assert.Equal(t, "LINEPROTO", records[1].Get("facility"))
	assert.Equal(t, "5", records[1].Get("severity"))

	r = records[3]
	assert.Equal(t, "Jun  2 09:12:01.455", r.Get("date"))
	assert.Equal(t, "SYS", r.Get("facility"))
	assert.Equal(t, "CONFIG_I", r.Get("mnemonic"))
	assert.Equal(t, "Configured from console by admin on vty0 (10.1.1.5)", r.Get("description"))
}

// TestParseLoggingFacilityWithSwitchNumber 堆叠设备的 facility 带成员编号
func TestParseLoggingFacilityWithSwitchNumber(t *testing.T) {
	lines := []string{
		"Sep  5 22:56:48.497: %LINK-SW1-3-UPDOWN: Interface TenGigabitEthernet1/3/11, changed state to down",
	}
	records := ParseLogging(lines)
	require.Len(t, records, 1)
	assert.Equal(t, "LINK-SW1", records[0].Get("facility"))
	assert.Equal(t, "3", records[0].Get("severity"))
	assert.Equal(t, "UPDOWN", records[0].Get("mnemonic"))
}
