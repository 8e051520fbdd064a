// Package classifier 实现 C/C++ 源码的启发式行分类器。
//
// 每个物理行被归为 Blank、CommentOnly 或 Code 之一。
// 跨行状态只有“是否处于未闭合的块注释中”，由调用方以值的形式逐行传递，
// 因此分类器本身无隐藏状态，可以在多个文件之间并发使用。
package classifier

import (
	"strings"
	"unicode"
)

// Class 表示单行的分类结果。
type Class int

const (
	// Blank 仅包含空白字符的行。
	Blank Class = iota
	// CommentOnly 不含任何代码字符的行。
	CommentOnly
	// Code 至少有一个字符位于注释之外。
	Code
)

// String 返回分类的小写名称。
func (c Class) String() string {
	switch c {
	case Blank:
		return "blank"
	case CommentOnly:
		return "comment"
	case Code:
		return "code"
	default:
		return "unknown"
	}
}

// State 是跨行传递的扫描状态。零值即文件起始状态。
type State struct {
	InBlockComment bool
}

// Result 是整份文本的分类结果。
//
// 不变式：Total == Blank + CommentOnly + Code == len(Lines)。
type Result struct {
	Total       int     `json:"total"`
	Blank       int     `json:"blank"`
	CommentOnly int     `json:"comment_only"`
	Code        int     `json:"code"`
	Lines       []Class `json:"-"`
}

// Add 累加一行分类结果。
func (r *Result) Add(class Class) {
	r.Total++
	switch class {
	case Blank:
		r.Blank++
	case CommentOnly:
		r.CommentOnly++
	default:
		r.Code++
	}
	r.Lines = append(r.Lines, class)
}

// Classify 对整份文本逐行折叠 ClassifyLine，状态从 State{} 开始。
func Classify(text string) Result {
	lines := SplitLines(text)
	result := Result{Lines: make([]Class, 0, len(lines))}

	state := State{}
	for _, line := range lines {
		var class Class
		class, state = ClassifyLine(line, state)
		result.Add(class)
	}

	return result
}

// ClassifyLine 分类单行并返回下一行的起始状态。
//
// 只含空白的行总是 Blank，且不改变块注释状态。
// 字符串/字符字面量状态只在行内有效，不会带入下一行。
func ClassifyLine(line string, state State) (Class, State) {
	if strings.TrimFunc(line, isSpace) == "" {
		return Blank, state
	}

	s := newLineScanner(line, state)
	s.run()

	next := State{InBlockComment: s.mode == modeBlockComment}
	if s.hasCode {
		return Code, next
	}
	return CommentOnly, next
}

// isSpace 与参考实现的空白判定保持一致：Unicode 空白外加 0x1C–0x1F。
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
