package scanner

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// pathFilter 负责目录忽略与文件排除判定。
type pathFilter struct {
	ignoreDirs map[string]struct{}
	patterns   []glob.Glob
}

func newPathFilter(ignoreDirs []string, patterns []string) *pathFilter {
	filter := &pathFilter{ignoreDirs: make(map[string]struct{})}

	for _, name := range ignoreDirs {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			filter.ignoreDirs[trimmed] = struct{}{}
		}
	}
	// 不指定分隔符编译，* 可以跨越 /，与 fnmatch 行为一致。
	// 无法编译的模式直接丢弃。
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		if compiled, err := glob.Compile(trimmed); err == nil {
			filter.patterns = append(filter.patterns, compiled)
		}
	}

	return filter
}

// ignoreDir 判断目录名是否需要跳过。
func (f *pathFilter) ignoreDir(name string) bool {
	_, ok := f.ignoreDirs[name]
	return ok
}

// excluded 判断文件是否被排除：模式匹配文件名或相对路径任意一个即可。
func (f *pathFilter) excluded(displayPath string) bool {
	base := path.Base(displayPath)
	for _, pattern := range f.patterns {
		if pattern.Match(base) || pattern.Match(displayPath) {
			return true
		}
	}
	return false
}
