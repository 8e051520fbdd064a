// Package model 定义 cstats 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

// LineMetrics 表示一组行级统计值。
//
// 注意：
// - Total = Code + Comment + Blank，每行只归入一类
// - Comment 指“仅含注释”的行，带行尾注释的代码行计入 Code
// - Complexity 是分支类 token 的命中次数，仅作为复杂度的粗略参考
type LineMetrics struct {
	Total      int64 `json:"total"`
	Code       int64 `json:"code"`
	Comment    int64 `json:"comment"`
	Blank      int64 `json:"blank"`
	Complexity int64 `json:"complexity"`
}

// Add 将另一个统计结果叠加到当前对象。
func (m *LineMetrics) Add(other LineMetrics) {
	m.Total += other.Total
	m.Code += other.Code
	m.Comment += other.Comment
	m.Blank += other.Blank
	m.Complexity += other.Complexity
}

// CodePercent 返回代码行占总行数的百分比。
func (m LineMetrics) CodePercent() float64 {
	return Percent(m.Code, m.Total)
}

// FileMetrics 表示单文件扫描结果。
type FileMetrics struct {
	Path      string      `json:"path"`
	Language  string      `json:"language"`
	Extension string      `json:"extension"`
	Directory string      `json:"directory"`
	Metrics   LineMetrics `json:"metrics"`
}

// GroupMetrics 表示按后缀或顶层目录聚合的结果。
type GroupMetrics struct {
	Key     string      `json:"key"`
	Files   int64       `json:"files"`
	Metrics LineMetrics `json:"metrics"`
}

// ScanError 记录单文件扫描失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错。
type ScanError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// TotalMetrics 表示项目级总计信息。
// 在 LineMetrics 基础上额外增加 Files 字段，
// 用于表达“本次扫描统计到了多少个有效源码文件”。
type TotalMetrics struct {
	Files int64 `json:"files"`
	LineMetrics
}

// AddFileMetrics 累加一个文件的统计值到项目总计中。
func (m *TotalMetrics) AddFileMetrics(other LineMetrics) {
	m.Files++
	m.LineMetrics.Add(other)
}

// Distribution 描述单文件代码行数的分布。
type Distribution struct {
	Avg    int64 `json:"avg"`
	Median int64 `json:"median"`
	P90    int64 `json:"p90"`
	P95    int64 `json:"p95"`
	P99    int64 `json:"p99"`
}

// ScanResult 是 scan 命令的完整输出模型。
//
// Files 按代码行数降序排列；Extensions 与 Directories 同样按代码行数降序。
type ScanResult struct {
	ScannedPath   string         `json:"scanned_path"`
	Files         []FileMetrics  `json:"files"`
	Extensions    []GroupMetrics `json:"extensions"`
	Directories   []GroupMetrics `json:"directories"`
	Total         TotalMetrics   `json:"total"`
	Distribution  Distribution   `json:"distribution"`
	CommentToCode float64        `json:"comment_to_code"`
	Errors        []ScanError    `json:"errors"`
}

// Percent 计算 part/whole 的百分比，whole 非正时返回 0。
func Percent(part int64, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
