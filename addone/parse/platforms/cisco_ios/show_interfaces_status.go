package cisco_ios

import (
	"strings"

	"github.com/showformatterpro/showformatterpro/addone/parse"
)

// show interfaces status 每接口一行，固定列宽切片取值。
//
//           1         2          3        4         5         6         7         8
// 012345678901234567890123456789012345678901234567890123456789012345678901234567890
// --------------+------------------+------------+----------+-----+------+---------
// Port          Name               Status       Vlan       Duplex  Speed Type
// [0:14]        [14:33]            [33:46]      [46:57]    [57:63] [63:70][70:]

// InterfaceStatusFieldnames CSV 表头顺序
var InterfaceStatusFieldnames = []string{
	"port", "name", "status", "vlan", "duplex", "speed", "type",
}

// 检出该行后进入表格区间
const interfaceStatusHeaderLine = "Port          Name               Status       Vlan       Duplex  Speed Type"

// 单行最小长度。不足说明已经切到下一条命令的回显
const interfaceStatusMinLen = 70

// ParseInterfacesStatus 逐行扫描回显，每行转换为一条记录
func ParseInterfacesStatus(lines []string) []parse.Record {
	records := make([]parse.Record, 0)
	inSection := false

	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r\n")

		if line == interfaceStatusHeaderLine {
			inSection = true
			// 表头行本身没有数据
			continue
		}

		if len(line) < interfaceStatusMinLen {
			inSection = false
			continue
		}

		if !inSection {
			continue
		}

		records = append(records, interfaceStatusRecord(line))
	}

	return records
}

// interfaceStatusRecord 将一行切片为记录
func interfaceStatusRecord(line string) parse.Record {
	d := parse.Record{}
	d["port"] = strings.TrimSpace(sliceCols(line, 0, 14))
	d["name"] = strings.TrimSpace(sliceCols(line, 14, 33))
	d["status"] = strings.TrimSpace(sliceCols(line, 33, 46))
	d["vlan"] = strings.TrimSpace(sliceCols(line, 46, 57))
	d["duplex"] = strings.TrimSpace(sliceCols(line, 57, 63))
	d["speed"] = strings.TrimSpace(sliceCols(line, 63, 70))
	if len(line) > interfaceStatusMinLen {
		d["type"] = strings.TrimSpace(line[70:])
	} else {
		d["type"] = ""
	}
	return d
}
