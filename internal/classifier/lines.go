package classifier

import "unicode/utf8"

// SplitLines 按物理行切分文本，行内容不包含行终止符。
//
// 终止符集合：\n、\r、\r\n、\v、\f、\x1c、\x1d、\x1e、U+0085、U+2028、U+2029。
// 末尾的终止符不会产生额外的空行；空文本返回零行。
func SplitLines(text string) []string {
	lines := make([]string, 0, 16)

	start := 0
	for idx := 0; idx < len(text); {
		r, size := utf8.DecodeRuneInString(text[idx:])
		if !isLineBreak(r) {
			idx += size
			continue
		}

		lines = append(lines, text[start:idx])
		idx += size
		// \r\n 作为一个整体终止符。
		if r == '\r' && idx < len(text) && text[idx] == '\n' {
			idx++
		}
		start = idx
	}

	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
