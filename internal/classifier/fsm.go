package classifier

// scanMode 是行内状态机的状态。
type scanMode int

const (
	modeNormal scanMode = iota
	// modeLineComment 遇到 // 后行内剩余部分全部跳过。
	modeLineComment
	modeBlockComment
	// modeString 处于单引号或双引号字面量中，delimiter 记录开引号。
	modeString
)

// lineScanner 维护单行扫描的游标与状态。
//
// 转移优先级：块注释延续 > 字符串转义 > 字符串结束 > 空白 > 行注释 > 块注释开始 > 其他代码。
type lineScanner struct {
	runes     []rune
	idx       int
	mode      scanMode
	delimiter rune
	hasCode   bool
}

func newLineScanner(line string, state State) *lineScanner {
	s := &lineScanner{runes: []rune(line), mode: modeNormal}
	if state.InBlockComment {
		s.mode = modeBlockComment
	}
	return s
}

// run 扫描到行尾或行注释为止。
func (s *lineScanner) run() {
	for s.idx < len(s.runes) && s.mode != modeLineComment {
		switch s.mode {
		case modeBlockComment:
			s.stepBlockComment()
		case modeString:
			s.stepString()
		default:
			s.stepNormal()
		}
	}
}

// stepBlockComment 从游标处查找 */，找不到则整行剩余部分都是注释。
func (s *lineScanner) stepBlockComment() {
	for i := s.idx; i+1 < len(s.runes); i++ {
		if s.runes[i] == '*' && s.runes[i+1] == '/' {
			s.mode = modeNormal
			s.idx = i + 2
			return
		}
	}
	s.idx = len(s.runes)
}

// stepString 消费字面量中的一个字符（或一个转义对）。
func (s *lineScanner) stepString() {
	s.hasCode = true

	current := s.runes[s.idx]
	if current == '\\' && s.idx+1 < len(s.runes) {
		s.idx += 2
		return
	}
	if current == s.delimiter {
		s.mode = modeNormal
	}
	s.idx++
}

func (s *lineScanner) stepNormal() {
	current := s.runes[s.idx]
	next := rune(0)
	if s.idx+1 < len(s.runes) {
		next = s.runes[s.idx+1]
	}

	switch {
	case current == '"' || current == '\'':
		s.mode = modeString
		s.delimiter = current
		s.hasCode = true
		s.idx++
	case isSpace(current):
		s.idx++
	case current == '/' && next == '/':
		s.mode = modeLineComment
	case current == '/' && next == '*':
		// 同一行内闭合的块注释不能吞掉前后的代码，所以继续扫描本行。
		s.mode = modeBlockComment
		s.idx += 2
	default:
		s.hasCode = true
		s.idx++
	}
}
