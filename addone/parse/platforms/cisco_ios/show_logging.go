package cisco_ios

import (
	"regexp"
	"strings"

	"github.com/showformatterpro/showformatterpro/addone/parse"
)

// show logging 逐行套用 syslog 格式，不匹配的行直接跳过。
// 日志格式随设备配置变化（时间戳样式、sequence 号等），按需调整正则。
//
// Sep  5 22:56:48.497: %LINK-SW1-3-UPDOWN: Interface TenGigabitEthernet1/3/11, changed state to down

// syslogToken 关注字段与提取正则。定义顺序即 CSV 列顺序
type syslogToken struct {
	key string
	re  *regexp.Regexp
}

var syslogTokens = []syslogToken{
	{"date", regexp.MustCompile(`^(\S.*): %.*-\d-.*: .*$`)},
	{"facility", regexp.MustCompile(`^\S.*: %(\S+)-\d-.*: .*$`)},
	{"severity", regexp.MustCompile(`^\S.*: %.*-(\d)-.*: .*$`)},
	{"mnemonic", regexp.MustCompile(`^\S.*: %.*-\d-(\S+): .*$`)},
	{"description", regexp.MustCompile(`^\S.*: %.*-\d-.*: (.*)$`)},
}

// SyslogFieldnames CSV 表头顺序
var SyslogFieldnames = func() []string {
	names := make([]string, 0, len(syslogTokens))
	for _, t := range syslogTokens {
		names = append(names, t.key)
	}
	return names
}()

// 判断该行是否为一条日志
var reSyslogLine = regexp.MustCompile(`^\S.*: (%.*-\d-.*): .*`)

// ParseLogging 逐行扫描回显，每条日志转换为一条记录
func ParseLogging(lines []string) []parse.Record {
	records := make([]parse.Record, 0)
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r\n")
		if !reSyslogLine.MatchString(line) {
			continue
		}
		records = append(records, syslogRecord(line))
	}
	return records
}

func syslogRecord(line string) parse.Record {
	d := parse.Record{}
	for _, t := range syslogTokens {
		if m := t.re.FindStringSubmatch(line); m != nil {
			d[t.key] = m[1]
		}
	}
	return d
}
