package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"cstats/internal/model"
)

// PrintTable 使用表格展示扫描结果。
// top 限制“代码行数最多的文件”表格的行数，<= 0 表示全部输出。
func PrintTable(writer io.Writer, result model.ScanResult, top int) error {
	renderer := lipgloss.NewRenderer(writer)
	titleStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle := renderer.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).MarginTop(1)

	var buffer bytes.Buffer

	buffer.WriteString(titleStyle.Render("C/C++ Codebase Report") + "\n")
	buffer.WriteString(mutedStyle.Render(fmt.Sprintf(
		"root: %s | files: %s", result.ScannedPath, humanize.Comma(result.Total.Files),
	)) + "\n")

	buffer.WriteString(sectionStyle.Render("Summary") + "\n")
	renderTable(&buffer, []string{"Metric", "Value"}, [][]string{
		{"Total lines", humanize.Comma(result.Total.Total)},
		{"Code lines", humanize.Comma(result.Total.Code)},
		{"Comment-only lines", humanize.Comma(result.Total.Comment)},
		{"Blank lines", humanize.Comma(result.Total.Blank)},
		{"Comment/Code ratio", fmt.Sprintf("%.2f", result.CommentToCode)},
		{"Complexity hits", humanize.Comma(result.Total.Complexity)},
	})

	buffer.WriteString(sectionStyle.Render("File size distribution (code lines)") + "\n")
	renderTable(&buffer, []string{"Statistic", "Code lines"}, [][]string{
		{"Avg", humanize.Comma(result.Distribution.Avg)},
		{"Median", humanize.Comma(result.Distribution.Median)},
		{"P90", humanize.Comma(result.Distribution.P90)},
		{"P95", humanize.Comma(result.Distribution.P95)},
		{"P99", humanize.Comma(result.Distribution.P99)},
	})

	buffer.WriteString(sectionStyle.Render("Breakdown by extension") + "\n")
	extensionRows := make([][]string, 0, len(result.Extensions))
	for _, item := range result.Extensions {
		extensionRows = append(extensionRows, append(
			[]string{item.Key, humanize.Comma(item.Files)},
			append(metricCells(item.Metrics), fmt.Sprintf("%.1f%%", item.Metrics.CodePercent()))...,
		))
	}
	renderTable(&buffer, []string{"Ext", "Files", "Total", "Code", "Comment", "Blank", "Complexity", "Code %"}, extensionRows)

	buffer.WriteString(sectionStyle.Render("Directory hotspots (top-level)") + "\n")
	directoryRows := make([][]string, 0, len(result.Directories))
	for _, item := range result.Directories {
		directoryRows = append(directoryRows, append([]string{item.Key, humanize.Comma(item.Files)}, metricCells(item.Metrics)...))
	}
	renderTable(&buffer, []string{"Dir", "Files", "Total", "Code", "Comment", "Blank", "Complexity"}, directoryRows)

	files := topFiles(result.Files, top)
	buffer.WriteString(sectionStyle.Render(fmt.Sprintf("Top %d files by code lines", len(files))) + "\n")
	fileRows := make([][]string, 0, len(files))
	for _, item := range files {
		fileRows = append(fileRows, append([]string{item.Path, item.Extension}, metricCells(item.Metrics)...))
	}
	renderTable(&buffer, []string{"File", "Ext", "Total", "Code", "Comment", "Blank", "Complexity"}, fileRows)

	if len(result.Errors) > 0 {
		buffer.WriteString(sectionStyle.Render("Errors") + "\n")
		errorRows := make([][]string, 0, len(result.Errors))
		for _, item := range result.Errors {
			errorRows = append(errorRows, []string{item.Path, item.Error})
		}
		renderTable(&buffer, []string{"Error file", "Message"}, errorRows)
	}

	buffer.WriteString(mutedStyle.Render("comment-only / code classification is heuristic (not a full C parser)") + "\n")

	_, err := writer.Write(buffer.Bytes())
	return err
}

// metricCells 输出 total/code/comment/blank/complexity 五列。
func metricCells(metrics model.LineMetrics) []string {
	return []string{
		humanize.Comma(metrics.Total),
		humanize.Comma(metrics.Code),
		humanize.Comma(metrics.Comment),
		humanize.Comma(metrics.Blank),
		humanize.Comma(metrics.Complexity),
	}
}

func renderTable(buffer *bytes.Buffer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(buffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}
