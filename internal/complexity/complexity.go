// Package complexity 统计分支/控制流 token 的命中次数。
//
// 这是一个粗略的复杂度指标：直接在原始文本上做正则匹配，
// 不跳过注释与字符串，因此会有高估，但足以快速定位“逻辑密集”的文件。
package complexity

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var tokenPatterns = []string{
	`\bif\b`, `\belse\b`, `\bfor\b`, `\bwhile\b`, `\bdo\b`,
	`\bswitch\b`, `\bcase\b`, `\bdefault\b`, `\breturn\b`,
	`\bgoto\b`, `&&`, `\|\|`, `\?`, `\bcontinue\b`, `\bbreak\b`,
}

var tokenRegexp = regexp.MustCompile(strings.Join(tokenPatterns, "|"))

// Count 返回 text 中分支 token 的非重叠命中次数。
func Count(text string) int {
	if text == "" {
		return 0
	}

	hits := 0
	for _, loc := range tokenRegexp.FindAllStringIndex(text, -1) {
		if wordBounded(text, loc[0], loc[1]) {
			hits++
		}
	}
	return hits
}

// wordBounded 判断关键字命中两侧是否都不是单词字符。
// RE2 的 \b 只认 ASCII，éif 这类紧贴非 ASCII 字母的命中在这里剔除。
// 关键字命中只由单词字符组成，剔除后不会漏掉与之重叠的其他命中。
func wordBounded(text string, start int, end int) bool {
	if !isWordRune(rune(text[start])) {
		return true
	}
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokens 返回用于报表说明的 token 列表。
func Tokens() []string {
	return []string{"if", "else", "for", "while", "switch", "case", "&&", "||", "?", "return", "goto"}
}
