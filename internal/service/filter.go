package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/showformatterpro/showformatterpro/addone/parse"
	"github.com/showformatterpro/showformatterpro/addone/parse/platforms/cisco_ios"
)

// 过滤条件的文本形式，便于 CLI 与 HTTP 共用：
//   key=regex        键值正则（忽略大小写）
//   mask:ge:24       掩码长度比较（eq/lt/le/gt/ge），仅路由记录有 mask 列

// BuildRecordFilters 解析 "key=regex" 与 "mask:op:len" 形式的过滤条件
func BuildRecordFilters(specs []string) ([]parse.RecordFilter, error) {
	filters := make([]parse.RecordFilter, 0, len(specs))
	for _, spec := range specs {
		if rest, ok := strings.CutPrefix(spec, "mask:"); ok {
			f, err := parseMaskRecordFilter(rest)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
			continue
		}

		key, query, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q, want key=regex", spec)
		}
		f, err := parse.NewFieldFilter(strings.TrimSpace(key), query)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// BuildRouteFilters 解析路由过滤条件。
// 支持 addr/proto/gw/interface 的正则与 mask 的比较运算
func BuildRouteFilters(specs []string) ([]cisco_ios.RouteFilter, error) {
	filters := make([]cisco_ios.RouteFilter, 0, len(specs))
	for _, spec := range specs {
		if rest, ok := strings.CutPrefix(spec, "mask:"); ok {
			f, err := parseMaskFilter(rest)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
			continue
		}

		key, query, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid route filter %q", spec)
		}
		var (
			f   cisco_ios.RouteFilter
			err error
		)
		switch strings.TrimSpace(key) {
		case "addr":
			f, err = cisco_ios.FilterRouteAddr(query)
		case "proto":
			f, err = cisco_ios.FilterRouteProto(query)
		case "gw":
			f, err = cisco_ios.FilterRouteGw(query)
		case "interface":
			f, err = cisco_ios.FilterRouteInterface(query)
		default:
			return nil, fmt.Errorf("unknown route filter key %q", key)
		}
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// parseMaskRecordFilter 通用记录版掩码过滤：mask 列为空或非数字时不命中
func parseMaskRecordFilter(spec string) (parse.RecordFilter, error) {
	op := "eq"
	lenStr := spec
	if left, right, ok := strings.Cut(spec, ":"); ok {
		op = strings.TrimSpace(left)
		lenStr = right
	}
	masklen, err := strconv.Atoi(strings.TrimSpace(lenStr))
	if err != nil {
		return nil, fmt.Errorf("invalid mask length %q: %w", lenStr, err)
	}
	switch op {
	case "eq", "lt", "le", "gt", "ge":
	default:
		return nil, fmt.Errorf("unknown mask operator %q", op)
	}
	return func(rec parse.Record) bool {
		v, aerr := strconv.Atoi(rec.Get("mask"))
		if aerr != nil {
			return false
		}
		switch op {
		case "lt":
			return v < masklen
		case "le":
			return v <= masklen
		case "gt":
			return v > masklen
		case "ge":
			return v >= masklen
		default:
			return v == masklen
		}
	}, nil
}

// parseMaskFilter 解析 "ge:24" 或 "24"（缺省 eq）
func parseMaskFilter(spec string) (cisco_ios.RouteFilter, error) {
	op := "eq"
	lenStr := spec
	if left, right, ok := strings.Cut(spec, ":"); ok {
		op = strings.TrimSpace(left)
		lenStr = right
	}
	masklen, err := strconv.Atoi(strings.TrimSpace(lenStr))
	if err != nil {
		return nil, fmt.Errorf("invalid mask length %q: %w", lenStr, err)
	}
	return cisco_ios.FilterRouteMask(masklen, op)
}
