package restapitest

import (
	"fmt"
	"strings"

	"github.com/cmstar/go-logx"
)

// NewLogRecorder 创建一个 LogRecorder 的新实例。
func NewLogRecorder() *LogRecorder {
	return new(LogRecorder)
}

// LogRecorder 实现 logx.Logger ，将每条日志记录为一个 [LogEntry] ，供测试用例断言。
type LogRecorder struct {
	entries []LogEntry
}

// LogEntry 是 LogRecorder 记录的一条日志。
type LogEntry struct {
	Level   logx.Level
	Message string

	// Fields 记录 keyValues 参数。 key 统一转为字符串；落单（没有对应 value ）的 key
	// 记录在 UNKNOWN 字段下。
	Fields map[string]string
}

var _ logx.Logger = (*LogRecorder)(nil)

// Log 实现 Logger.Log() 。
func (l *LogRecorder) Log(level logx.Level, message string, keyValues ...interface{}) error {
	entry := LogEntry{
		Level:   level,
		Message: message,
		Fields:  make(map[string]string),
	}

	length := len(keyValues)
	for i := 0; i < length-1; i += 2 {
		k := fmt.Sprintf("%v", keyValues[i])
		entry.Fields[k] = fmt.Sprintf("%v", keyValues[i+1])
	}
	if length%2 != 0 {
		entry.Fields["UNKNOWN"] = fmt.Sprintf("%v", keyValues[length-1])
	}

	l.entries = append(l.entries, entry)
	return nil
}

// LogFn 实现 Logger.LogFn() 。
func (l *LogRecorder) LogFn(level logx.Level, messageFactory func() (string, []interface{})) error {
	m, kv := messageFactory()
	return l.Log(level, m, kv...)
}

// Entries 返回记录的全部日志。
func (l *LogRecorder) Entries() []LogEntry {
	return l.entries
}

// Last 返回最后一条日志。没有日志时返回零值。
func (l *LogRecorder) Last() LogEntry {
	if len(l.entries) == 0 {
		return LogEntry{}
	}
	return l.entries[len(l.entries)-1]
}

// String 将全部日志拼接为可读文本，每条日志一行：
//
//	level={LEVEL} message={MESSAGE} KEY1=VALUE1 ...
//
// 同一条日志的字段按 Log() 收到的顺序无法保证，仅用于人工排查，断言应使用 Entries() 。
func (l *LogRecorder) String() string {
	b := new(strings.Builder)
	for _, e := range l.entries {
		b.WriteString("level=")
		b.WriteString(logx.LevelToString(e.Level))
		b.WriteString(" message=")
		b.WriteString(e.Message)
		for k, v := range e.Fields {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
