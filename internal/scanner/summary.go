package scanner

import (
	"sort"

	"cstats/internal/model"
	"cstats/internal/stats"
)

// buildSummaries 计算后缀/目录级汇总、总计与分布信息。
func buildSummaries(result *model.ScanResult) {
	sort.Slice(result.Files, func(i int, j int) bool {
		left, right := result.Files[i], result.Files[j]
		if left.Metrics.Code != right.Metrics.Code {
			return left.Metrics.Code > right.Metrics.Code
		}
		return left.Path < right.Path
	})

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	byExtension := make(map[string]*model.GroupMetrics)
	byDirectory := make(map[string]*model.GroupMetrics)
	result.Total = model.TotalMetrics{}
	codeLines := make([]int64, 0, len(result.Files))

	for _, item := range result.Files {
		result.Total.AddFileMetrics(item.Metrics)
		addToGroup(byExtension, item.Extension, item.Metrics)
		addToGroup(byDirectory, item.Directory, item.Metrics)
		codeLines = append(codeLines, item.Metrics.Code)
	}

	result.Extensions = sortedGroups(byExtension)
	result.Directories = sortedGroups(byDirectory)
	result.Distribution = stats.Summarize(codeLines)
	result.CommentToCode = float64(result.Total.Comment) / float64(max(1, result.Total.Code))
}

func addToGroup(groups map[string]*model.GroupMetrics, key string, metrics model.LineMetrics) {
	group, ok := groups[key]
	if !ok {
		group = &model.GroupMetrics{Key: key}
		groups[key] = group
	}
	group.Files++
	group.Metrics.Add(metrics)
}

// sortedGroups 按代码行数降序输出，代码行数相同时按 key 升序。
func sortedGroups(groups map[string]*model.GroupMetrics) []model.GroupMetrics {
	result := make([]model.GroupMetrics, 0, len(groups))
	for _, item := range groups {
		result = append(result, *item)
	}

	sort.Slice(result, func(i int, j int) bool {
		if result[i].Metrics.Code != result[j].Metrics.Code {
			return result[i].Metrics.Code > result[j].Metrics.Code
		}
		return result[i].Key < result[j].Key
	})
	return result
}
