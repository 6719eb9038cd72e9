package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocalStorageWriter 本地归档的目录层级与写入
func TestLocalStorageWriter(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Local.BaseDir = t.TempDir()
	cfg.Storage.Prefix = "formatted"

	w := NewStorageWriter(cfg)
	obj, err := w.Write(context.Background(), StorageMeta{
		SaveDir: "site a/rack#1",
		TaskID:  "fmt-20260830120000-0001",
		Name:    "show_ip_route.csv",
	}, "proto,addr\n", "text/csv")
	require.NoError(t, err)

	assert.Equal(t, "local", obj.Backend)
	assert.Equal(t, len("proto,addr\n"), obj.Size)
	// save_dir 中的不安全字符已被替换
	assert.Contains(t, obj.Path, "site_a_rack_1")
	assert.Contains(t, obj.Path, "fmt-20260830120000-0001")

	b, err := os.ReadFile(obj.Path)
	require.NoError(t, err)
	assert.Equal(t, "proto,addr\n", string(b))
}

// TestDelegatingWriterFallsBackToLocal MinIO 未配置时回退本地
func TestDelegatingWriterFallsBackToLocal(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Local.BaseDir = t.TempDir()
	cfg.Storage.Backend = "minio" // 未配置 host，client 为 nil

	w := NewStorageWriter(cfg)
	obj, err := w.Write(context.Background(), StorageMeta{TaskID: "t1", Name: "raw.txt"}, "x", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "local", obj.Backend)
}

// TestSlug 路径片段清洗
func TestSlug(t *testing.T) {
	assert.Equal(t, "show_ip_route", Slug("show ip route"))
	assert.Equal(t, "show_cdp_neighbors", Slug("  show cdp neighbors  "))
	assert.Equal(t, "a.b-c_1", Slug("a.b-c 1"))
	assert.Equal(t, "x", Slug("!!x!!"))
}
