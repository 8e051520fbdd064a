package languages

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText 把文件字节解码为文本。
//
// 合法 UTF-8 原样返回；否则按 ISO-8859-1 解码。
// Latin-1 对任意字节都有定义，因此解码不会失败。
func DecodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		// 逐字节映射作为兜底，结果与 Latin-1 一致。
		runes := make([]rune, len(content))
		for i, b := range content {
			runes[i] = rune(b)
		}
		return string(runes)
	}
	return string(decoded)
}
