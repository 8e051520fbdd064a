// Package config 负责 cstats 的默认配置与环境变量覆盖。
//
// 优先级：命令行参数 > 环境变量（含 .env）> 默认值。
// 这里只处理后两层，加载结果作为 cobra flag 的默认值。
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// 支持的输出格式。
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatHTML  = "html"
)

// DefaultIgnoreDirs 是默认跳过的目录名。
const DefaultIgnoreDirs = ".git,build,dist,out,.cache,__pycache__,node_modules,venv,.venv"

// Config 是 scan 命令的全部可配置项。
type Config struct {
	Format          string
	Output          string
	Workers         int
	Top             int
	IgnoreDirs      []string
	ExcludePatterns []string
	FollowSymlinks  bool
	CacheSize       int
	LogLevel        string
}

// Default 返回内置默认配置。
func Default() Config {
	return Config{
		Format:     FormatTable,
		Workers:    runtime.NumCPU(),
		Top:        25,
		IgnoreDirs: SplitList(DefaultIgnoreDirs),
		CacheSize:  1024,
		LogLevel:   "warn",
	}
}

// Load 读取当前目录的 .env（不存在时忽略），再用 CSTATS_* 环境变量覆盖默认值。
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv 使用给定的查找函数应用环境变量覆盖，便于测试注入。
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if value, ok := lookupTrimmed(lookup, "CSTATS_FORMAT"); ok {
		cfg.Format = strings.ToLower(value)
	}
	if value, ok := lookupTrimmed(lookup, "CSTATS_OUTPUT"); ok {
		cfg.Output = value
	}
	if value, ok := lookupTrimmed(lookup, "CSTATS_IGNORE"); ok {
		cfg.IgnoreDirs = SplitList(value)
	}
	if value, ok := lookupTrimmed(lookup, "CSTATS_EXCLUDE_FILES"); ok {
		cfg.ExcludePatterns = SplitList(value)
	}
	if value, ok := lookupTrimmed(lookup, "CSTATS_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(value)
	}

	var err error
	if cfg.Workers, err = intFromEnv(lookup, "CSTATS_WORKERS", cfg.Workers); err != nil {
		return cfg, err
	}
	if cfg.Top, err = intFromEnv(lookup, "CSTATS_TOP", cfg.Top); err != nil {
		return cfg, err
	}
	if cfg.CacheSize, err = intFromEnv(lookup, "CSTATS_CACHE_SIZE", cfg.CacheSize); err != nil {
		return cfg, err
	}

	if value, ok := lookupTrimmed(lookup, "CSTATS_FOLLOW_SYMLINKS"); ok {
		follow, parseErr := strconv.ParseBool(value)
		if parseErr != nil {
			return cfg, fmt.Errorf("parse CSTATS_FOLLOW_SYMLINKS: %w", parseErr)
		}
		cfg.FollowSymlinks = follow
	}

	return cfg, nil
}

// Validate 校验配置取值。
func (c Config) Validate() error {
	switch c.Format {
	case FormatTable, FormatJSON, FormatHTML:
	default:
		return errors.New("unsupported format, allowed values: table, json, html")
	}

	if c.Workers <= 0 {
		return errors.New("workers must be greater than 0")
	}
	if c.Top <= 0 {
		return errors.New("top must be greater than 0")
	}
	if c.CacheSize < 0 {
		return errors.New("cache size must not be negative")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	return nil
}

// OutputPath 返回导出文件路径，未指定时按格式给出默认文件名。
func (c Config) OutputPath() string {
	if output := strings.TrimSpace(c.Output); output != "" {
		return output
	}

	switch c.Format {
	case FormatHTML:
		return "c_stats_report.html"
	case FormatJSON:
		return "output.json"
	default:
		return ""
	}
}

// SplitList 按逗号拆分并去掉空项。
func SplitList(raw string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	value, ok := lookup(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func intFromEnv(lookup func(string) (string, bool), key string, fallback int) (int, error) {
	value, ok := lookupTrimmed(lookup, key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}
