package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"cstats/internal/languages"
)

// writeFixtureFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func writeFixtureFile(t *testing.T, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture file failed: %v", err)
	}
}

// scanPaths 返回扫描结果中的全部展示路径。
func scanPaths(t *testing.T, service *Service, root string) []string {
	t.Helper()

	result, err := service.ScanPath(context.Background(), root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	paths := make([]string, 0, len(result.Files))
	for _, item := range result.Files {
		paths = append(paths, item.Path)
	}
	return paths
}

func containsPath(paths []string, want string) bool {
	for _, item := range paths {
		if item == want {
			return true
		}
	}
	return false
}

// TestScanSingleFile 验证 scan 支持“直接传单文件路径”。
func TestScanSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "single.c")

	writeFixtureFile(t, filePath, strings.Join([]string{
		"#include <stdio.h>",
		"// top comment",
		"int main(void) { int x = 1; // inline",
	}, "\n"))

	service := NewService(languages.NewRegistry(), Options{Workers: 2})
	result, err := service.ScanPath(context.Background(), filePath)
	if err != nil {
		t.Fatalf("scan single file failed: %v", err)
	}

	if len(result.Files) != 1 {
		t.Fatalf("expected 1 scanned file, got %d", len(result.Files))
	}
	if result.Total.Files != 1 {
		t.Fatalf("expected total.files=1, got %d", result.Total.Files)
	}
	if result.Total.Total != 3 || result.Total.Code != 2 || result.Total.Comment != 1 || result.Total.Blank != 0 {
		t.Fatalf("unexpected total metrics: %+v", result.Total)
	}

	fileMetrics := result.Files[0]
	if fileMetrics.Path != "single.c" {
		t.Fatalf("expected display path single.c, got %s", fileMetrics.Path)
	}
	if fileMetrics.Language != "C/C++" {
		t.Fatalf("expected language C/C++, got %s", fileMetrics.Language)
	}
	if fileMetrics.Directory != "." || fileMetrics.Extension != ".c" {
		t.Fatalf("unexpected grouping keys: %+v", fileMetrics)
	}
}

// TestScanDirectoryGroups 验证目录扫描的总计、后缀与顶层目录汇总。
func TestScanDirectoryGroups(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "main.c"), strings.Join([]string{
		"int main(void) {",
		"  return 0;",
		"}",
	}, "\n"))
	writeFixtureFile(t, filepath.Join(tempDir, "src", "util.h"), strings.Join([]string{
		"/* util */",
		"",
		"int util(void);",
	}, "\n"))
	writeFixtureFile(t, filepath.Join(tempDir, "src", "deep", "util.C"), "int deep;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "README.txt"), "not a source file")

	service := NewService(languages.NewRegistry(), Options{Workers: 4})
	result, err := service.ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("scan directory failed: %v", err)
	}

	if len(result.Files) != 3 || result.Total.Files != 3 {
		t.Fatalf("expected 3 scanned files, got %d (total %d)", len(result.Files), result.Total.Files)
	}
	if result.Total.Total != 7 || result.Total.Code != 5 || result.Total.Comment != 1 || result.Total.Blank != 1 {
		t.Fatalf("unexpected total metrics: %+v", result.Total)
	}

	if result.Files[0].Path != "main.c" {
		t.Fatalf("expected main.c to lead by code lines, got %s", result.Files[0].Path)
	}

	if len(result.Extensions) != 2 || result.Extensions[0].Key != ".c" || result.Extensions[0].Files != 2 {
		t.Fatalf("unexpected extension groups: %+v", result.Extensions)
	}
	if len(result.Directories) != 2 || result.Directories[0].Key != "." || result.Directories[1].Key != "src" {
		t.Fatalf("unexpected directory groups: %+v", result.Directories)
	}
	if result.Directories[1].Files != 2 {
		t.Fatalf("expected 2 files under src, got %d", result.Directories[1].Files)
	}

	if result.Distribution.Median != 1 || result.Distribution.P90 != 3 {
		t.Fatalf("unexpected distribution: %+v", result.Distribution)
	}
	if result.CommentToCode != 0.2 {
		t.Fatalf("unexpected comment/code ratio: %v", result.CommentToCode)
	}
}

// TestScanUnsupportedSingleFile 验证单文件模式下不支持后缀会返回错误。
func TestScanUnsupportedSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "demo.txt")
	writeFixtureFile(t, filePath, "plain text")

	service := NewService(languages.NewRegistry(), Options{Workers: 1})
	_, err := service.ScanPath(context.Background(), filePath)
	if err == nil {
		t.Fatalf("expected unsupported extension error, got nil")
	}
	if !strings.Contains(err.Error(), "unsupported file extension") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestScanEmptyAndMissingPath 验证空路径与不存在路径返回错误。
func TestScanEmptyAndMissingPath(t *testing.T) {
	service := NewService(languages.NewRegistry(), Options{})

	if _, err := service.ScanPath(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := service.ScanPath(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

// TestScanIgnoreAndExclude 验证目录忽略与文件排除规则。
func TestScanIgnoreAndExclude(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "keep.c"), "int keep;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "build", "gen.c"), "int gen;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "src", "build", "nested.c"), "int nested;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "src", "test_main.c"), "int test;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "third_party", "lib", "vendor.c"), "int vendor;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "src", "miniz.h"), "int miniz;\n")

	service := NewService(languages.NewRegistry(), Options{
		Workers:         2,
		IgnoreDirs:      []string{"build", " "},
		ExcludePatterns: []string{"*test*.*", "third_party/**", " miniz.h "},
	})

	paths := scanPaths(t, service, tempDir)

	if len(paths) != 1 || paths[0] != "keep.c" {
		t.Fatalf("unexpected scanned paths: %v", paths)
	}
}

// TestScanDuplicateContentUsesCache 验证内容相同的文件都被统计。
func TestScanDuplicateContentUsesCache(t *testing.T) {
	tempDir := t.TempDir()
	content := "int a;\n// note\n"

	writeFixtureFile(t, filepath.Join(tempDir, "a.c"), content)
	writeFixtureFile(t, filepath.Join(tempDir, "b", "a.c"), content)

	service := NewService(languages.NewRegistry(), Options{Workers: 1, CacheSize: 8})
	result, err := service.ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if result.Total.Files != 2 || result.Total.Code != 2 || result.Total.Comment != 2 {
		t.Fatalf("unexpected totals: %+v", result.Total)
	}
	if service.cache.Len() != 1 {
		t.Fatalf("expected 1 cached entry, got %d", service.cache.Len())
	}
}

// TestScanSymlinks 验证符号链接文件总会被统计，链接目录只在开启时进入且不会成环。
func TestScanSymlinks(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "real", "a.c"), "int a;\n")

	if err := os.Symlink(filepath.Join(tempDir, "real"), filepath.Join(tempDir, "link")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(tempDir, "real", "a.c"), filepath.Join(tempDir, "alias.c")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}
	if err := os.Symlink(tempDir, filepath.Join(tempDir, "real", "loop")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	plain := scanPaths(t, NewService(languages.NewRegistry(), Options{Workers: 2}), tempDir)
	if len(plain) != 2 || !containsPath(plain, "real/a.c") || !containsPath(plain, "alias.c") {
		t.Fatalf("unexpected paths without follow: %v", plain)
	}

	followed := scanPaths(t, NewService(languages.NewRegistry(), Options{Workers: 2, FollowSymlinks: true}), tempDir)
	if len(followed) != 3 || !containsPath(followed, "link/a.c") {
		t.Fatalf("unexpected paths with follow: %v", followed)
	}
}

// TestScanCanceledContext 验证 ctx 取消会中止扫描。
func TestScanCanceledContext(t *testing.T) {
	tempDir := t.TempDir()
	writeFixtureFile(t, filepath.Join(tempDir, "a.c"), "int a;\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewService(languages.NewRegistry(), Options{Workers: 1})
	if _, err := service.ScanPath(ctx, tempDir); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// writeUnreadableFile 写入文件后去掉全部权限；root 或 Windows 下权限不生效，直接跳过。
func writeUnreadableFile(t *testing.T, path string, content string) {
	t.Helper()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for this user")
	}

	writeFixtureFile(t, path, content)
	if err := os.Chmod(path, 0o000); err != nil {
		t.Fatalf("chmod fixture failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(path, 0o644) })
}

// TestScanRecordsUnreadableFiles 验证读取失败的文件进入 Errors，其余文件照常统计。
func TestScanRecordsUnreadableFiles(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "src", "ok.c"), "int ok;\n// note\n\n")
	writeUnreadableFile(t, filepath.Join(tempDir, "src", "z_locked.c"), "int z;\n")
	writeUnreadableFile(t, filepath.Join(tempDir, "a_locked.h"), "int a;\n")

	service := NewService(languages.NewRegistry(), Options{Workers: 3})
	result, err := service.ScanPath(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("unreadable files must not abort the scan: %v", err)
	}

	if len(result.Files) != 1 || result.Files[0].Path != "src/ok.c" {
		t.Fatalf("unexpected files: %+v", result.Files)
	}
	if result.Total.Files != 1 || result.Total.Total != 3 || result.Total.Code != 1 || result.Total.Comment != 1 || result.Total.Blank != 1 {
		t.Fatalf("unexpected totals: %+v", result.Total)
	}

	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 scan errors, got %+v", result.Errors)
	}
	if result.Errors[0].Path != "a_locked.h" || result.Errors[1].Path != "src/z_locked.c" {
		t.Fatalf("errors should be sorted by path: %+v", result.Errors)
	}
	for _, item := range result.Errors {
		if !strings.Contains(item.Error, "permission denied") {
			t.Fatalf("unexpected error message: %+v", item)
		}
	}
}
