package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewFieldFilter 键值正则过滤（忽略大小写、search 语义）
func TestNewFieldFilter(t *testing.T) {
	rec := Record{"device_id": "E-Cat3750X-41Stack", "local_interface": "Ten 2/4/4"}

	f, err := NewFieldFilter("device_id", "cat3750x")
	require.NoError(t, err)
	assert.True(t, f(rec), "忽略大小写的部分匹配")

	f, err = NewFieldFilter("device_id", "^Nexus")
	require.NoError(t, err)
	assert.False(t, f(rec))

	f, err = NewFieldFilter("missing", "anything")
	require.NoError(t, err)
	assert.False(t, f(rec), "缺失键按空串处理")

	_, err = NewFieldFilter("", "x")
	assert.Error(t, err, "键名为空视为无效条件")

	_, err = NewFieldFilter("device_id", "([")
	assert.Error(t, err, "非法正则")
}

// TestFilterRecords 多个过滤器全部命中才保留
func TestFilterRecords(t *testing.T) {
	records := []Record{
		{"device_id": "sw-01", "local_interface": "Gig 1/0/1"},
		{"device_id": "sw-02", "local_interface": "Gig 1/0/2"},
		{"device_id": "rt-01", "local_interface": "Gig 1/0/3"},
	}

	f1, _ := NewFieldFilter("device_id", "^sw-")
	f2, _ := NewFieldFilter("local_interface", "1/0/2")
	out := FilterRecords(records, []RecordFilter{f1, f2})
	require.Len(t, out, 1)
	assert.Equal(t, "sw-02", out[0].Get("device_id"))

	assert.Len(t, FilterRecords(records, nil), 3, "无过滤器时原样返回")
}

// TestRegistryFallback 未注册平台回退到 default 插件
func TestRegistryFallback(t *testing.T) {
	p := Get("no_such_platform")
	require.NotNil(t, p)
	assert.Equal(t, "default", p.Name())

	_, err := p.Parse(ParseContext{Platform: "no_such_platform"}, nil)
	assert.Error(t, err)
}

// TestRegister 注册后按名取回
func TestRegister(t *testing.T) {
	Register("test_platform", &DefaultPlugin{})
	assert.NotNil(t, Get("test_platform"))
	assert.Contains(t, Platforms(), "test_platform")
	assert.NotContains(t, Platforms(), "default")
}
