package cisco_ios

import (
	"regexp"
	"strings"

	"github.com/showformatterpro/showformatterpro/addone/parse"
)

// show interfaces 按接口分块，块首形如：
//   TenGigabitEthernet1/1/1 is administratively down, line protocol is down (disabled)
// 块内逐行套用关注字段的正则，命中即记录。块首行自身也携带字段。

// interfaceToken 关注字段与提取正则
type interfaceToken struct {
	key string
	re  *regexp.Regexp
}

// 字段定义顺序即 CSV 列顺序
var interfaceTokens = []interfaceToken{
	{"name", regexp.MustCompile(`^(\S+) is .*, line protocol is .*$`)},
	{"status", regexp.MustCompile(`^\S+ is (.*), line protocol is .*$`)},
	{"line_protocol", regexp.MustCompile(`^\S+ is .*, line protocol is (.*)$`)},
	{"description", regexp.MustCompile(`^\s+Description: (.*)$`)},
	{"duplex", regexp.MustCompile(`^\s+(.*), .*, media type is .*$`)},
	{"speed", regexp.MustCompile(`^\s+\S+, (.*)b/s, media type is .*$`)},
	{"media", regexp.MustCompile(`^\s+\S+, .*, media type is (.*)$`)},
	{"output_drops", regexp.MustCompile(`^\s+.* Total output drops: (\d+)`)},
	{"input_rate_bps", regexp.MustCompile(`^\s+5 minute input rate (\d+) bits/sec.*$`)},
	{"input_rate_pps", regexp.MustCompile(`^\s+5 minute input rate .* bits/sec, (\d+) packets/sec$`)},
	{"output_rate_bps", regexp.MustCompile(`^\s+5 minute output rate (\d+) bits/sec.*$`)},
	{"output_rate_pps", regexp.MustCompile(`^\s+5 minute output rate .* bits/sec, (\d+) packets/sec$`)},
	{"input_packets", regexp.MustCompile(`^\s+(\d+) packets input, .*$`)},
	{"input_bytes", regexp.MustCompile(`^\s+\d+ packets input, (\d+) bytes, .*$`)},
	{"input_errors", regexp.MustCompile(`^\s+(\d+) input errors, \d+ CRC, \d+ frame, \d+ overrun, \d+ ignored$`)},
	{"crc", regexp.MustCompile(`^\s+\d+ input errors, (\d+) CRC, \d+ frame, \d+ overrun, \d+ ignored$`)},
	{"output_packets", regexp.MustCompile(`^\s+(\d+) packets output, .*$`)},
	{"output_bytes", regexp.MustCompile(`^\s+\d+ packets output, (\d+) bytes, .*$`)},
	{"output_errors", regexp.MustCompile(`^\s+(\d+) output errors, \d+ collisions, \d+ interface resets$`)},
}

// InterfaceFieldnames CSV 表头顺序
var InterfaceFieldnames = func() []string {
	names := make([]string, 0, len(interfaceTokens))
	for _, t := range interfaceTokens {
		names = append(names, t.key)
	}
	return names
}()

// 接口块的起始行。该行本身也包含字段，检出后不能直接跳过
var reInterfaceStart = regexp.MustCompile(`^(\S+) is .*, line protocol is .*$`)

// 行首非空白且不是块首，视为回显结束（如提示符行）
var reInterfaceEnd = regexp.MustCompile(`^(\S+)`)

// ParseInterfaces 逐行扫描回显，按接口分块并转换为记录
func ParseInterfaces(lines []string) []parse.Record {
	records := make([]parse.Record, 0)

	inSection := false
	var d parse.Record

	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")

		if !inSection {
			// 跳过头部无关行，直到发现第一个接口
			if reInterfaceStart.MatchString(line) {
				inSection = true
				d = parse.Record{}
				scanInterfaceTokens(d, line)
			}
			continue
		}

		if reInterfaceStart.MatchString(line) {
			// 下一个接口开始，先产出上一个
			records = append(records, d)
			d = parse.Record{}
			scanInterfaceTokens(d, line)
			continue
		}

		if reInterfaceEnd.MatchString(line) {
			// 块结束（非缩进行），产出当前接口
			inSection = false
			records = append(records, d)
			continue
		}

		scanInterfaceTokens(d, line)
	}

	// 回显在块中途截断时补产出
	if inSection && d != nil {
		records = append(records, d)
	}

	return records
}

func scanInterfaceTokens(d parse.Record, line string) {
	for _, t := range interfaceTokens {
		if m := t.re.FindStringSubmatch(line); m != nil {
			d[t.key] = m[1]
		}
	}
}
