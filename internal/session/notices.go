package session

import "strings"

// NoticeKind controls how a notice is colored.
type NoticeKind uint8

const (
	NoticeInfo    NoticeKind = iota // path progress
	NoticeGain                      // currency and rewards
	NoticeWarning                   // rejected input, integrity problems
	NoticeBattle
)

// Notice is one line of the comms log.
type Notice struct {
	Text string
	Kind NoticeKind
}

// NoticeLog is a bounded FIFO of notices.
type NoticeLog struct {
	notices []Notice
	maxSize int
	width   int
}

// NewNoticeLog keeps the most recent maxSize lines, wrapping at width.
func NewNoticeLog(maxSize, width int) *NoticeLog {
	return &NoticeLog{
		notices: make([]Notice, 0, maxSize),
		maxSize: max(maxSize, 1),
		width:   max(width, 8),
	}
}

// Add appends a notice, evicting the oldest lines when full.
func (l *NoticeLog) Add(text string, kind NoticeKind) {
	for _, line := range wrap(text, l.width) {
		n := Notice{Text: line, Kind: kind}
		if len(l.notices) >= l.maxSize {
			copy(l.notices, l.notices[1:])
			l.notices[len(l.notices)-1] = n
		} else {
			l.notices = append(l.notices, n)
		}
	}
}

// Recent returns the last n lines (or fewer).
func (l *NoticeLog) Recent(n int) []Notice {
	n = max(min(n, len(l.notices)), 0)
	return l.notices[len(l.notices)-n:]
}

// Len returns the number of stored lines.
func (l *NoticeLog) Len() int { return len(l.notices) }

// wrap splits text into lines no longer than width. Words longer than width
// get a line of their own.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			out = append(out, line)
			line = w
		} else {
			line += " " + w
		}
	}
	return append(out, line)
}
