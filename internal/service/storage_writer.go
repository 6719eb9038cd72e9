package service

import (
	"context"
	"fmt"
	"net"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/showformatterpro/showformatterpro/internal/config"
	"github.com/showformatterpro/showformatterpro/pkg/logger"
)

// StorageWriter 抽象归档写入器
type StorageWriter interface {
	Write(ctx context.Context, meta StorageMeta, content string, contentType string) (StoredObject, error)
}

// StorageMeta 写入元数据
type StorageMeta struct {
	SaveDir string
	TaskID  string
	// Name 对象文件名（含扩展名），如 show_ip_route.csv
	Name    string
	Backend string // local|minio
}

// StoredObject 已写入对象的定位信息
type StoredObject struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
	Size    int    `json:"size"`
}

// NewStorageWriter 根据配置创建写入器（委派到本地或 MinIO）
func NewStorageWriter(cfg *config.Config) StorageWriter {
	dw := &DelegatingStorageWriter{cfg: cfg, local: &LocalStorageWriter{cfg: cfg}}
	dw.minio = initMinioWriter(cfg)
	return dw
}

// DelegatingStorageWriter 按后端路由写入
type DelegatingStorageWriter struct {
	cfg   *config.Config
	local *LocalStorageWriter
	minio *MinioStorageWriter
}

func (w *DelegatingStorageWriter) Write(ctx context.Context, meta StorageMeta, content string, contentType string) (StoredObject, error) {
	backend := strings.ToLower(strings.TrimSpace(meta.Backend))
	if backend == "" {
		backend = strings.ToLower(strings.TrimSpace(w.cfg.Storage.Backend))
	}
	if backend == "minio" {
		if w.minio == nil {
			// MinIO 未初始化：记录预警并回退到本地
			logger.Warn("MinIO backend selected but client not initialized; falling back to local")
			return w.local.Write(ctx, meta, content, contentType)
		}
		obj, err := w.minio.Write(ctx, meta, content, contentType)
		if err != nil {
			// 失败则记录预警并回退到本地
			logger.Warnf("MinIO write failed; falling back to local: %v", err)
			return w.local.Write(ctx, meta, content, contentType)
		}
		return obj, nil
	}
	// 默认走本地
	return w.local.Write(ctx, meta, content, contentType)
}

// LocalStorageWriter 本地文件写入
type LocalStorageWriter struct {
	cfg *config.Config
}

func (w *LocalStorageWriter) Write(ctx context.Context, meta StorageMeta, content string, contentType string) (StoredObject, error) {
	baseDir := strings.TrimSpace(w.cfg.Storage.Local.BaseDir)
	if baseDir == "" {
		baseDir = "./data/artifacts"
	}

	// 层级：baseDir / storage.prefix / save_dir / date / taskID
	parts := []string{baseDir}
	if p := strings.TrimSpace(w.cfg.Storage.Prefix); p != "" {
		parts = append(parts, p)
	}
	if sd := strings.TrimSpace(meta.SaveDir); sd != "" {
		parts = append(parts, Slug(sd))
	}
	parts = append(parts, time.Now().Format("20060102"))
	if tid := strings.TrimSpace(meta.TaskID); tid != "" {
		parts = append(parts, tid)
	}

	dirPath := filepath.Join(parts...)
	if w.cfg.Storage.Local.MkdirIfMissing {
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			return StoredObject{}, fmt.Errorf("mkdir %s: %w", dirPath, err)
		}
	}

	filePath := filepath.Join(dirPath, meta.Name)
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return StoredObject{}, fmt.Errorf("write %s: %w", filePath, err)
	}
	return StoredObject{Backend: "local", Path: filePath, Size: len(content)}, nil
}

// MinioStorageWriter 对象存储写入
type MinioStorageWriter struct {
	cfg    *config.Config
	client *minio.Client
}

func initMinioWriter(cfg *config.Config) *MinioStorageWriter {
	mc := cfg.Storage.Minio
	if strings.TrimSpace(mc.Host) == "" {
		return nil
	}
	endpoint := net.JoinHostPort(mc.Host, strconv.Itoa(mc.Port))
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
		Secure: mc.Secure,
	})
	if err != nil {
		logger.Warnf("MinIO client init failed: %v", err)
		return nil
	}
	return &MinioStorageWriter{cfg: cfg, client: client}
}

func (w *MinioStorageWriter) Write(ctx context.Context, meta StorageMeta, content string, contentType string) (StoredObject, error) {
	mc := w.cfg.Storage.Minio
	parts := make([]string, 0, 5)
	if p := strings.TrimSpace(w.cfg.Storage.Prefix); p != "" {
		parts = append(parts, p)
	}
	if sd := strings.TrimSpace(meta.SaveDir); sd != "" {
		parts = append(parts, Slug(sd))
	}
	parts = append(parts, time.Now().Format("20060102"))
	if tid := strings.TrimSpace(meta.TaskID); tid != "" {
		parts = append(parts, tid)
	}
	parts = append(parts, meta.Name)
	objectName := path.Join(parts...)

	reader := strings.NewReader(content)
	_, err := w.client.PutObject(ctx, mc.Bucket, objectName, reader, int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return StoredObject{}, fmt.Errorf("put object %s: %w", objectName, err)
	}
	return StoredObject{Backend: "minio", Path: objectName, Size: len(content)}, nil
}

var reSlug = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Slug 将命令或目录名转换为安全的文件路径片段
func Slug(s string) string {
	s = strings.TrimSpace(s)
	s = reSlug.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
