package service

import (
	"context"
	"sort"

	"github.com/showformatterpro/showformatterpro/addone/parse/platforms/cisco_ios"
)

// RouteDiffRequest 路由表差分请求：迁移前后两份 show ip route 回显
type RouteDiffRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
	// Filters 差分前先过滤两侧条目（见 BuildRouteFilters）
	Filters []string `json:"filters,omitempty"`
}

// RouteDiffResult 差分结果。Common 数量通常很大，仅返回计数
type RouteDiffResult struct {
	BeforeCount int                    `json:"before_count"`
	AfterCount  int                    `json:"after_count"`
	CommonCount int                    `json:"common_count"`
	Removed     []cisco_ios.RouteEntry `json:"removed"`
	Added       []cisco_ios.RouteEntry `json:"added"`
}

// DiffRoutes 解析两份回显并差分（同一地址+掩码+网关视为同一条）
func (s *FormatService) DiffRoutes(ctx context.Context, req RouteDiffRequest) (*RouteDiffResult, error) {
	filters, err := BuildRouteFilters(req.Filters)
	if err != nil {
		return nil, err
	}

	before := cisco_ios.FilterRoutes(cisco_ios.ParseRoutes(s.NormalizeLines(req.Before)), filters)
	after := cisco_ios.FilterRoutes(cisco_ios.ParseRoutes(s.NormalizeLines(req.After)), filters)

	diff := cisco_ios.DiffRoutes(before, after)
	sortRoutes(diff.Removed)
	sortRoutes(diff.Added)

	return &RouteDiffResult{
		BeforeCount: len(before),
		AfterCount:  len(after),
		CommonCount: len(diff.Common),
		Removed:     diff.Removed,
		Added:       diff.Added,
	}, nil
}

// DiffRouteFiles 读取两个回显文件并差分
func (s *FormatService) DiffRouteFiles(ctx context.Context, beforePath, afterPath string, filters []string) (*RouteDiffResult, error) {
	before, err := ReadInput(beforePath)
	if err != nil {
		return nil, err
	}
	after, err := ReadInput(afterPath)
	if err != nil {
		return nil, err
	}
	return s.DiffRoutes(ctx, RouteDiffRequest{Before: before, After: after, Filters: filters})
}

func sortRoutes(entries []cisco_ios.RouteEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Less(entries[j]) })
}
