// Package stats 计算单文件代码行数的分布统计。
package stats

import (
	"sort"

	"cstats/internal/model"
)

// Summarize 返回 values 的均值、中位数和 P90/P95/P99，结果均截断为整数。
//
// 空输入按 [0] 处理。分位数采用 exclusive 方法；
// 样本数不足 10/20/100 时对应分位数退化为最大值。
func Summarize(values []int64) model.Distribution {
	if len(values) == 0 {
		values = []int64{0}
	}

	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i int, j int) bool {
		return sorted[i] < sorted[j]
	})
	maxValue := sorted[len(sorted)-1]

	return model.Distribution{
		Avg:    int64(mean(sorted)),
		Median: int64(median(sorted)),
		P90:    percentileOrMax(sorted, 10, 8, maxValue),
		P95:    percentileOrMax(sorted, 20, 18, maxValue),
		P99:    percentileOrMax(sorted, 100, 98, maxValue),
	}
}

func percentileOrMax(sorted []int64, n int, index int, maxValue int64) int64 {
	if len(sorted) < n {
		return maxValue
	}
	return int64(Quantile(sorted, n, index+1))
}

// Quantile 返回把 sorted 划分为 n 等份时的第 i 个切分点（1 <= i < n）。
//
// 算法与 exclusive 分位数一致：m = len+1，j = i*m/n 夹在 [1, len-1]，
// 在 sorted[j-1] 与 sorted[j] 之间按整数余量线性插值。
// sorted 必须升序且至少包含 2 个元素。
func Quantile(sorted []int64, n int, i int) float64 {
	size := len(sorted)
	m := size + 1

	j := i * m / n
	if j < 1 {
		j = 1
	} else if j > size-1 {
		j = size - 1
	}

	delta := i*m - j*n
	return (float64(sorted[j-1])*float64(n-delta) + float64(sorted[j])*float64(delta)) / float64(n)
}

func mean(sorted []int64) float64 {
	var sum float64
	for _, value := range sorted {
		sum += float64(value)
	}
	return sum / float64(len(sorted))
}

func median(sorted []int64) float64 {
	middle := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[middle])
	}
	return float64(sorted[middle-1]+sorted[middle]) / 2
}
