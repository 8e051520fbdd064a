// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、过滤、任务分发、并发执行和结果聚合，不负责行分类细节。
package scanner

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"cstats/internal/languages"
	"cstats/internal/model"
)

// Options 是扫描服务的可配置项。
type Options struct {
	// Workers 为并发 worker 数量，<= 0 时使用 CPU 核数。
	Workers int
	// IgnoreDirs 是需要整体跳过的目录名（精确匹配目录名）。
	IgnoreDirs []string
	// ExcludePatterns 匹配文件名或相对路径的 glob，** 可跨目录。
	ExcludePatterns []string
	// FollowSymlinks 为 true 时会进入符号链接指向的目录。
	FollowSymlinks bool
	// CacheSize 是按内容哈希缓存分析结果的条目数，0 表示不缓存。
	CacheSize int
	// Logger 为 nil 时丢弃日志。
	Logger *slog.Logger
}

// Service 是扫描服务对象。
type Service struct {
	registry *languages.Registry
	workers  int
	filter   *pathFilter
	follow   bool
	cache    *lru.Cache[[sha256.Size]byte, model.LineMetrics]
	logger   *slog.Logger
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
	analyzer     languages.Analyzer
}

// workerResult 表示 worker 的执行产物。
type workerResult struct {
	fileMetrics *model.FileMetrics
	scanError   *model.ScanError
}

// NewService 创建扫描服务。
func NewService(registry *languages.Registry, options Options) *Service {
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	service := &Service{
		registry: registry,
		workers:  workers,
		filter:   newPathFilter(options.IgnoreDirs, options.ExcludePatterns),
		follow:   options.FollowSymlinks,
		logger:   logger,
	}

	if options.CacheSize > 0 {
		// 只有 size <= 0 时 lru.New 才会报错，这里已经排除。
		service.cache, _ = lru.New[[sha256.Size]byte, model.LineMetrics](options.CacheSize)
	}

	return service
}

// ScanPath 扫描目录或单文件。
// 单文件读取失败只记录到 Errors，遍历错误或 ctx 取消会中止扫描。
func (s *Service) ScanPath(ctx context.Context, targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	result.ScannedPath = absoluteTarget

	tasks := make(chan scanTask, s.workers*4)
	results := make(chan workerResult, s.workers*4)

	walkGroup, walkCtx := errgroup.WithContext(ctx)
	walkGroup.Go(func() error {
		defer close(tasks)
		if info.IsDir() {
			return s.enqueueDirectoryTasks(walkCtx, absoluteTarget, tasks)
		}
		return s.enqueueSingleFileTask(walkCtx, absoluteTarget, tasks)
	})

	var workerGroup sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(tasks, results)
		}()
	}

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	result.Files = make([]model.FileMetrics, 0)
	result.Errors = make([]model.ScanError, 0)

	for item := range results {
		if item.fileMetrics != nil {
			result.Files = append(result.Files, *item.fileMetrics)
		}
		if item.scanError != nil {
			result.Errors = append(result.Errors, *item.scanError)
		}
	}

	if walkErr := walkGroup.Wait(); walkErr != nil {
		return result, walkErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	buildSummaries(&result)
	return result, nil
}

// enqueueSingleFileTask 在用户给定单文件路径时创建任务。
// 单文件模式不应用 exclude 规则，用户显式指定的文件总会被统计。
func (s *Service) enqueueSingleFileTask(ctx context.Context, filePath string, tasks chan<- scanTask) error {
	analyzer, ok := s.registry.AnalyzerForFile(filePath)
	if !ok {
		return fmt.Errorf("unsupported file extension: %s", filepath.Ext(filePath))
	}

	return sendTask(ctx, tasks, scanTask{
		absolutePath: filePath,
		displayPath:  filepath.Base(filePath),
		analyzer:     analyzer,
	})
}

// runWorker 执行真实的文件读取和语言分析。
func (s *Service) runWorker(tasks <-chan scanTask, results chan<- workerResult) {
	for task := range tasks {
		metrics, err := s.analyzeFile(task)
		if err != nil {
			s.logger.Warn("skip unreadable file", "path", task.displayPath, "error", err)
			results <- workerResult{
				scanError: &model.ScanError{
					Path:  task.displayPath,
					Error: err.Error(),
				},
			}
			continue
		}

		results <- workerResult{
			fileMetrics: &model.FileMetrics{
				Path:      task.displayPath,
				Language:  task.analyzer.Name(),
				Extension: strings.ToLower(filepath.Ext(task.displayPath)),
				Directory: topLevelDirectory(task.displayPath),
				Metrics:   metrics,
			},
		}
	}
}

// analyzeFile 读取文件并分析；内容完全相同的文件命中缓存后直接复用结果。
func (s *Service) analyzeFile(task scanTask) (model.LineMetrics, error) {
	content, err := os.ReadFile(task.absolutePath)
	if err != nil {
		return model.LineMetrics{}, err
	}

	var digest [sha256.Size]byte
	if s.cache != nil {
		digest = sha256.Sum256(content)
		if metrics, ok := s.cache.Get(digest); ok {
			s.logger.Debug("analysis cache hit", "path", task.displayPath)
			return metrics, nil
		}
	}

	metrics, err := task.analyzer.Analyze(bytes.NewReader(content))
	if err != nil {
		return model.LineMetrics{}, err
	}

	if s.cache != nil {
		s.cache.Add(digest, metrics)
	}
	return metrics, nil
}

// sendTask 在 ctx 取消时放弃投递。
func sendTask(ctx context.Context, tasks chan<- scanTask, task scanTask) error {
	select {
	case tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// topLevelDirectory 返回相对路径的第一级目录，根目录下的文件归为 "."。
func topLevelDirectory(displayPath string) string {
	first, _, found := strings.Cut(displayPath, "/")
	if !found {
		return "."
	}
	return first
}
