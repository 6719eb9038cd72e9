package parse

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnsupportedCommand 平台插件不支持该命令的格式化
var ErrUnsupportedCommand = errors.New("command has no formatter")

// ParseContext 解析上下文
type ParseContext struct {
	Platform string
	Command  string
	// 以下信息用于落库与产物归档
	TaskID string
	Source string // 输入来源（文件路径、"-" 或设备名）
}

// Record 单条解析结果。键名来自各命令的 Fieldnames，缺失的列为空串
type Record map[string]string

// Get 取值，缺失返回空串
func (r Record) Get(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}

// ParseOutput 解析输出（用于展示、CSV 渲染与格式化入库）
type ParseOutput struct {
	Platform string
	Command  string
	// Table 落库目标表名（如 cdp_neighbors、route_entries）
	Table string
	// Fieldnames 列顺序。画面表示与 CSV 表头均按此顺序
	Fieldnames []string
	Records    []Record
}

// ParsePlugin 平台解析插件接口
type ParsePlugin interface {
	Name() string
	// Commands 返回该平台支持格式化的命令清单
	Commands() []string
	// Parse 将命令回显的行数组解析为结构化数据
	Parse(ctx ParseContext, lines []string) (ParseOutput, error)
}

// RecordFilter 记录过滤器：命中返回 true
type RecordFilter func(Record) bool

// NewFieldFilter 构造按键值正则匹配的过滤器（忽略大小写）
// key 为空时返回错误，对应原有"无效条件"语义
func NewFieldFilter(key, valueQuery string) (RecordFilter, error) {
	if key == "" {
		return nil, fmt.Errorf("filter key is empty")
	}
	re, err := regexp.Compile("(?i)" + valueQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", valueQuery, err)
	}
	return func(r Record) bool {
		return re.MatchString(r.Get(key))
	}, nil
}

// MatchAll 依次应用全部过滤器，全部命中才返回 true
func MatchAll(r Record, filters []RecordFilter) bool {
	for _, f := range filters {
		if !f(r) {
			return false
		}
	}
	return true
}

// FilterRecords 返回命中全部过滤器的记录
func FilterRecords(records []Record, filters []RecordFilter) []Record {
	if len(filters) == 0 {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if MatchAll(r, filters) {
			out = append(out, r)
		}
	}
	return out
}
