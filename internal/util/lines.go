package util

import (
	"strings"

	"github.com/showformatterpro/showformatterpro/internal/config"
)

// SplitLines 统一换行符后按行切分，并移除各行右端空白。
// 各解析器都以"右端已清理的行数组"为输入
func SplitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}

// FilterOutputLines 按配置移除分页提示等噪声行。
// 终端翻页采集的回显里常混入 "--More--" 与其退格残留
func FilterOutputLines(lines []string, cfg config.OutputFilterConfig) []string {
	if len(cfg.Prefixes) == 0 && len(cfg.Contains) == 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if matchesFilter(line, cfg) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func matchesFilter(line string, cfg config.OutputFilterConfig) bool {
	probe := strings.TrimSpace(line)
	if cfg.CaseInsensitive {
		probe = strings.ToLower(probe)
	}
	for _, p := range cfg.Prefixes {
		if cfg.CaseInsensitive {
			p = strings.ToLower(p)
		}
		// 纯 "more" 行只做整行匹配，避免误伤正文
		if p == "more" {
			if probe == p {
				return true
			}
			continue
		}
		if strings.HasPrefix(probe, p) {
			return true
		}
	}
	for _, c := range cfg.Contains {
		if cfg.CaseInsensitive {
			c = strings.ToLower(c)
		}
		if strings.Contains(probe, c) {
			return true
		}
	}
	return false
}
