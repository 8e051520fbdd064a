package languages

import (
	"fmt"
	"io"

	"cstats/internal/classifier"
	"cstats/internal/complexity"
	"cstats/internal/model"
)

// CCPPAnalyzer 是 C/C++ 分析器。
// 行分类交给 classifier 包的启发式状态机，复杂度由 complexity 包统计。
type CCPPAnalyzer struct{}

// Name 返回语言名称。
func (a *CCPPAnalyzer) Name() string {
	return "C/C++"
}

// Extensions 返回 C/C++ 典型后缀集合。
func (a *CCPPAnalyzer) Extensions() []string {
	return []string{".c", ".h", ".cc", ".cpp", ".cxx", ".hpp", ".hh", ".hxx", ".inl", ".inc"}
}

// Analyze 读取完整内容后分类。
// 块注释状态需要在行之间传递，整份文本一次性交给 classifier.Classify。
func (a *CCPPAnalyzer) Analyze(reader io.Reader) (model.LineMetrics, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return model.LineMetrics{}, fmt.Errorf("read source: %w", err)
	}
	return analyzeText(DecodeText(content)), nil
}

// AnalyzeLines 返回逐行分类，供 classify 命令展示。
func (a *CCPPAnalyzer) AnalyzeLines(reader io.Reader) ([]string, classifier.Result, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, classifier.Result{}, fmt.Errorf("read source: %w", err)
	}

	text := DecodeText(content)
	return classifier.SplitLines(text), classifier.Classify(text), nil
}

func analyzeText(text string) model.LineMetrics {
	result := classifier.Classify(text)
	return model.LineMetrics{
		Total:      int64(result.Total),
		Code:       int64(result.Code),
		Comment:    int64(result.CommentOnly),
		Blank:      int64(result.Blank),
		Complexity: int64(complexity.Count(text)),
	}
}
