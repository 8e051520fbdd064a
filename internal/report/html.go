package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"cstats/internal/complexity"
	"cstats/internal/model"
)

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"comma": humanize.Comma,
}).Parse(htmlTemplateSource))

// maxDirectoryRows 是 HTML 目录明细表的行数上限。
const maxDirectoryRows = 80

// HTMLOptions 控制 HTML 报告的展示范围。
type HTMLOptions struct {
	// Top 限制各类 Top 图表与文件明细的行数，<= 0 表示全部。
	Top int
	// ExcludePatterns 仅用于在页脚展示本次使用的排除规则。
	ExcludePatterns []string
}

// barRow 是一行 CSS 条形图。
type barRow struct {
	Label string
	Width int
	Value string
	Class string
}

type htmlView struct {
	Root           string
	Top            int
	Total          model.TotalMetrics
	CommentToCode  float64
	Distribution   model.Distribution
	Composition    []barRow
	ExtensionBars  []barRow
	DirectoryBars  []barRow
	FileBars       []barRow
	ComplexityBars []barRow
	Extensions     []model.GroupMetrics
	Directories    []model.GroupMetrics
	Files          []model.FileMetrics
	Errors         []model.ScanError
	Tokens         string
	Excludes       string
}

// RenderHTML 把扫描结果渲染为单文件 HTML 报告，样式与图表全部内联。
func RenderHTML(writer io.Writer, result model.ScanResult, options HTMLOptions) error {
	if err := htmlTemplate.Execute(writer, buildHTMLView(result, options)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// WriteHTMLFile 将 HTML 报告导出到指定路径。
// 如果目录不存在会自动创建。
func WriteHTMLFile(outputPath string, result model.ScanResult, options HTMLOptions) error {
	if err := ensureParentDir(outputPath); err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	renderErr := RenderHTML(file, result, options)
	closeErr := file.Close()
	if renderErr != nil {
		return renderErr
	}
	if closeErr != nil {
		return fmt.Errorf("close output file: %w", closeErr)
	}
	return nil
}

func buildHTMLView(result model.ScanResult, options HTMLOptions) htmlView {
	files := topFiles(result.Files, options.Top)
	complexFiles := topFilesByComplexity(result.Files, options.Top)
	extensions := topGroups(result.Extensions, options.Top)
	directories := topGroups(result.Directories, options.Top)

	excludes := "(none)"
	if len(options.ExcludePatterns) > 0 {
		excludes = strings.Join(options.ExcludePatterns, ", ")
	}

	denominator := max(1, result.Total.Total)
	view := htmlView{
		Root:          result.ScannedPath,
		Top:           len(files),
		Total:         result.Total,
		CommentToCode: result.CommentToCode,
		Distribution:  result.Distribution,
		Composition: []barRow{
			compositionBar("Code", result.Total.Code, denominator),
			compositionBar("Comment-only", result.Total.Comment, denominator),
			compositionBar("Blank", result.Total.Blank, denominator),
		},
		Extensions:  result.Extensions,
		Directories: topGroups(result.Directories, maxDirectoryRows),
		Files:       files,
		Errors:      result.Errors,
		Tokens:      strings.Join(complexity.Tokens(), ", "),
		Excludes:    excludes,
	}

	maxExtension := int64(0)
	for _, item := range extensions {
		maxExtension = max(maxExtension, item.Metrics.Code)
	}
	for _, item := range extensions {
		view.ExtensionBars = append(view.ExtensionBars, codeBar(item.Key, item.Metrics.Code, maxExtension, "bar bar2"))
	}

	maxDirectory := int64(0)
	for _, item := range directories {
		maxDirectory = max(maxDirectory, item.Metrics.Code)
	}
	for _, item := range directories {
		view.DirectoryBars = append(view.DirectoryBars, codeBar(item.Key, item.Metrics.Code, maxDirectory, "bar bar3"))
	}

	maxFile := int64(0)
	for _, item := range files {
		maxFile = max(maxFile, item.Metrics.Code)
	}
	for _, item := range files {
		view.FileBars = append(view.FileBars, codeBar(shortPath(item.Path), item.Metrics.Code, maxFile, "bar"))
	}

	maxComplexity := int64(0)
	for _, item := range complexFiles {
		maxComplexity = max(maxComplexity, item.Metrics.Complexity)
	}
	for _, item := range complexFiles {
		view.ComplexityBars = append(view.ComplexityBars, barRow{
			Label: shortPath(item.Path),
			Width: barWidth(item.Metrics.Complexity, maxComplexity),
			Value: humanize.Comma(item.Metrics.Complexity) + " hits",
			Class: "bar bad",
		})
	}

	return view
}

func compositionBar(label string, value int64, denominator int64) barRow {
	return barRow{
		Label: label,
		Width: barWidth(value, denominator),
		Value: fmt.Sprintf("%s (%.2f%%)", humanize.Comma(value), model.Percent(value, denominator)),
		Class: "bar",
	}
}

func codeBar(label string, code int64, maxCode int64, class string) barRow {
	return barRow{
		Label: label,
		Width: barWidth(code, maxCode),
		Value: humanize.Comma(code) + " code",
		Class: class,
	}
}

// barWidth 把 value 归一化为 0–100 的宽度百分比，.5 向偶数取整。
func barWidth(value int64, maxValue int64) int {
	if maxValue <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(value) / float64(maxValue) * 100))
}

func topGroups(groups []model.GroupMetrics, top int) []model.GroupMetrics {
	if top <= 0 || top >= len(groups) {
		return groups
	}
	return groups[:top]
}
