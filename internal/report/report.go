// Package report 提供 cstats 的输出能力。
// 当前实现支持 table 控制台格式、JSON 格式（含文件导出）和单文件 HTML 报告。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"cstats/internal/model"
)

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(outputPath string, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := ensureParentDir(outputPath); err != nil {
		return err
	}

	if writeErr := os.WriteFile(outputPath, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

// ensureParentDir 在导出文件前创建缺失的父目录。
func ensureParentDir(outputPath string) error {
	directory := filepath.Dir(outputPath)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}
	return nil
}

// topFiles 返回前 top 个文件，top <= 0 时返回全部。
func topFiles(files []model.FileMetrics, top int) []model.FileMetrics {
	if top <= 0 || top >= len(files) {
		return files
	}
	return files[:top]
}

// topFilesByComplexity 按复杂度命中降序返回前 top 个文件，命中相同时保持原顺序。
func topFilesByComplexity(files []model.FileMetrics, top int) []model.FileMetrics {
	sorted := append([]model.FileMetrics(nil), files...)
	sort.SliceStable(sorted, func(i int, j int) bool {
		return sorted[i].Metrics.Complexity > sorted[j].Metrics.Complexity
	})
	return topFiles(sorted, top)
}

// shortPath 只保留路径最后两段，用于图表标签。
func shortPath(displayPath string) string {
	parts := strings.Split(displayPath, "/")
	if len(parts) < 2 {
		return displayPath
	}
	return path.Join(parts[len(parts)-2:]...)
}
