package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Format   FormatConfig   `mapstructure:"format"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

// SQLiteConfig SQLite配置
type SQLiteConfig struct {
	Path            string        `mapstructure:"path"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// StorageConfig 解析产物（原始回显与 CSV）归档配置
type StorageConfig struct {
	// Backend 默认存储后端：local | minio
	Backend string `mapstructure:"backend"`
	// Prefix 顶层保存目录前缀（与请求中的 save_dir 组合）
	Prefix string             `mapstructure:"prefix"`
	Local  LocalStorageConfig `mapstructure:"local"`
	Minio  MinioConfig        `mapstructure:"minio"`
}

// LocalStorageConfig 本地归档配置
type LocalStorageConfig struct {
	BaseDir        string `mapstructure:"base_dir"`
	MkdirIfMissing bool   `mapstructure:"mkdir_if_missing"`
}

// MinioConfig 对象存储配置
type MinioConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Secure    bool   `mapstructure:"secure"`
}

// FormatConfig 格式化与展示配置
type FormatConfig struct {
	// RightJust 画面表示时键名的右对齐宽度
	RightJust int `mapstructure:"right_just"`
	// DefaultOutputFilename 标准输入场景下的缺省 CSV 文件名
	DefaultOutputFilename string `mapstructure:"default_output_filename"`
	// Concurrent 批量解析的并发上限
	Concurrent int `mapstructure:"concurrent"`
	// OutputFilter 解析前的行过滤（移除分页提示等）
	OutputFilter OutputFilterConfig `mapstructure:"output_filter"`
}

// OutputFilterConfig 输出过滤器配置
type OutputFilterConfig struct {
	// Prefixes: 移除以这些字符串开头的行（例如分页提示 "---- More ----" 或纯 more 行）
	Prefixes []string `mapstructure:"prefixes"`
	// Contains: 移除包含这些子串的行（例如 Cisco 的 "--more--"）
	Contains []string `mapstructure:"contains"`
	// CaseInsensitive: 忽略大小写匹配（默认启用）
	CaseInsensitive bool `mapstructure:"case_insensitive"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

var globalConfig *Config

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")

	// 设置默认值
	setDefaults()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// 默认配置文件路径
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("../configs")
		viper.AddConfigPath("../../configs")
	}

	// 设置环境变量前缀
	viper.SetEnvPrefix("SHOW_FORMATTER")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	globalConfig = &config
	return &config, nil
}

func setDefaults() {
	setDefaultsOn(viper.GetViper())
}

func setDefaultsOn(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("database.sqlite.path", "./data/formatter.db")
	v.SetDefault("database.sqlite.conn_max_lifetime", time.Hour)

	// 归档默认走本地
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.prefix", "formatted")
	v.SetDefault("storage.local.base_dir", "./data/artifacts")
	v.SetDefault("storage.local.mkdir_if_missing", true)

	// 画面表示与 CSV 的缺省行为
	v.SetDefault("format.right_just", 20)
	v.SetDefault("format.default_output_filename", "output.csv")
	v.SetDefault("format.concurrent", 8)

	// 默认输出过滤规则：大小写不敏感
	v.SetDefault("format.output_filter.case_insensitive", true)
	// 默认前缀匹配：H3C/Huawei 页提示与纯 more 行
	v.SetDefault("format.output_filter.prefixes", []string{"---- More ----", "more"})
	// 默认包含匹配：Cisco --more-- 提示
	v.SetDefault("format.output_filter.contains", []string{"--more--"})

	// 日志默认级别为 info（可通过 log.level 覆盖为 debug/warn/error 等）
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.file_path", "./logs/formatter.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
}

// Default 返回内置默认配置（无配置文件场景，如命令行工具）
func Default() *Config {
	v := viper.New()
	setDefaultsOn(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		// 默认值全部为内置字面量，Unmarshal 不应失败
		panic(fmt.Sprintf("unmarshal default config: %v", err))
	}
	globalConfig = &config
	return &config
}

// Get 获取全局配置
func Get() *Config {
	return globalConfig
}

// GetServerAddr 获取服务器地址
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
