package cisco_ios

import (
	"strings"

	"github.com/showformatterpro/showformatterpro/addone/parse"
)

// show cdp neighbors 回显为固定列宽表格，按字符位置切片取值。
// 主机名过长时邻居会折成两行：第一行只有 device_id，第二行以空格开头补齐其余列。
//
//           1         2          3        4         5         6         7
// 012345678901234567890123456789012345678901234567890123456789012345678901234
// -----------------+-----------------+----------+-----------+---------+------
// Device ID        Local Intrfce     Holdtme    Capability  Platform  Port ID
// [0:17]           [17:35]           [35:46]    [46:58]     [58:68]   [68:]

// CdpNeighborFieldnames CSV 表头顺序
var CdpNeighborFieldnames = []string{
	"device_id", "local_interface", "holdtime", "capability", "platform", "port_id",
}

// 检出该行后进入表格区间
const cdpHeaderLine = "Device ID        Local Intrfce     Holdtme    Capability  Platform  Port ID"

// ParseCdpNeighbors 逐行扫描回显，按邻居切分并转换为记录
func ParseCdpNeighbors(lines []string) []parse.Record {
	records := make([]parse.Record, 0)

	// 邻居对应的 1~2 行暂存
	pending := make([]string, 0, 2)
	inSection := false

	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r\n")
		if line == "" {
			continue
		}

		// 含 # 的行视为提示符，表格区间结束。主机名带 # 时此处会误判，属已知取舍
		if strings.Contains(line, "#") {
			inSection = false
			continue
		}

		if strings.Contains(line, cdpHeaderLine) {
			inSection = true
			continue
		}

		if !inSection {
			continue
		}

		if len(line) < 68 {
			// 行太短：主机名单独占一行（或者是残行），暂存等下一行
			pending = append(pending, line)
			continue
		}

		if strings.HasPrefix(line, " ") {
			// 行首空白说明是折行的第二行，与暂存的主机名行合并
			pending = append(pending, line)
			records = append(records, cdpNeighborRecord(pending))
			pending = pending[:0]
			continue
		}

		// 常规单行表示
		pending = append(pending, line)
		records = append(records, cdpNeighborRecord(pending))
		pending = pending[:0]
	}

	return records
}

// cdpNeighborRecord 将 1 行或 2 行的邻居信息切片为记录。
// 行长不足时对应列保持缺省，避免越界
func cdpNeighborRecord(lines []string) parse.Record {
	d := parse.Record{}

	line := lines[0]
	if len(lines) == 1 {
		d["device_id"] = strings.TrimSpace(sliceCols(line, 0, 17))
	} else {
		// 折行时第一行整体就是 device_id
		d["device_id"] = strings.TrimSpace(line)
		line = lines[1]
	}

	if len(line) >= 35 {
		d["local_interface"] = strings.TrimSpace(sliceCols(line, 17, 35))
	}
	if len(line) >= 46 {
		d["holdtime"] = strings.TrimSpace(sliceCols(line, 35, 46))
	}
	if len(line) >= 58 {
		d["capability"] = strings.TrimSpace(sliceCols(line, 46, 58))
	}
	if len(line) >= 68 {
		d["platform"] = strings.TrimSpace(sliceCols(line, 58, 68))
	}
	if len(line) > 68 {
		d["port_id"] = strings.TrimSpace(line[68:])
	}

	return d
}

// sliceCols 截取 [from:to)，行长不足时截到行尾
func sliceCols(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return line[from:to]
}
