package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// enqueueDirectoryTasks 遍历目录并把可识别语言文件推入任务队列。
//
// 符号链接指向的文件总会被统计；指向目录时只有开启 FollowSymlinks 才会进入，
// 每个真实目录最多进入一次，避免链接成环。
func (s *Service) enqueueDirectoryTasks(ctx context.Context, root string, tasks chan<- scanTask) error {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("resolve scan root: %w", err)
	}

	visited := map[string]struct{}{realRoot: {}}
	return s.walkDirectory(ctx, realRoot, "", visited, tasks)
}

// walkDirectory 遍历 walkRoot，displayPrefix 是 walkRoot 相对扫描根目录的展示路径。
func (s *Service) walkDirectory(
	ctx context.Context,
	walkRoot string,
	displayPrefix string,
	visited map[string]struct{},
	tasks chan<- scanTask,
) error {
	return filepath.WalkDir(walkRoot, func(current string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		displayPath := displayPathFor(walkRoot, current, displayPrefix)

		if entry.IsDir() {
			if current != walkRoot && s.filter.ignoreDir(entry.Name()) {
				s.logger.Debug("skip ignored directory", "path", displayPath)
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return s.handleSymlink(ctx, current, displayPath, visited, tasks)
		}

		if !entry.Type().IsRegular() {
			return nil
		}
		return s.enqueueFile(ctx, current, displayPath, tasks)
	})
}

// handleSymlink 解析链接目标并按目标类型分别处理。
func (s *Service) handleSymlink(
	ctx context.Context,
	linkPath string,
	displayPath string,
	visited map[string]struct{},
	tasks chan<- scanTask,
) error {
	target, err := filepath.EvalSymlinks(linkPath)
	if err != nil {
		s.logger.Debug("skip broken symlink", "path", displayPath, "error", err)
		return nil
	}

	info, err := os.Stat(target)
	if err != nil {
		s.logger.Debug("skip unreadable symlink target", "path", displayPath, "error", err)
		return nil
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil
		}
		return s.enqueueFile(ctx, target, displayPath, tasks)
	}

	if !s.follow || s.filter.ignoreDir(path.Base(displayPath)) {
		return nil
	}
	if _, seen := visited[target]; seen {
		s.logger.Debug("skip already visited directory", "path", displayPath, "target", target)
		return nil
	}
	visited[target] = struct{}{}

	return s.walkDirectory(ctx, target, displayPath, visited, tasks)
}

// enqueueFile 过滤后缀与 exclude 规则后投递任务。
func (s *Service) enqueueFile(ctx context.Context, absolutePath string, displayPath string, tasks chan<- scanTask) error {
	analyzer, ok := s.registry.AnalyzerForFile(displayPath)
	if !ok {
		return nil
	}

	if s.filter.excluded(displayPath) {
		s.logger.Debug("skip excluded file", "path", displayPath)
		return nil
	}

	return sendTask(ctx, tasks, scanTask{
		absolutePath: absolutePath,
		displayPath:  displayPath,
		analyzer:     analyzer,
	})
}

// displayPathFor 生成以 / 分隔、相对扫描根目录的展示路径。
func displayPathFor(walkRoot string, current string, displayPrefix string) string {
	relativePath, err := filepath.Rel(walkRoot, current)
	if err != nil {
		relativePath = current
	}
	relativePath = filepath.ToSlash(relativePath)

	if displayPrefix == "" {
		return relativePath
	}
	if relativePath == "." {
		return displayPrefix
	}
	return path.Join(displayPrefix, relativePath)
}
