package restapitest

import (
	"testing"

	"github.com/cmstar/go-logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecorder(t *testing.T) {
	r := NewLogRecorder()
	assert.Empty(t, r.Entries())
	assert.Empty(t, r.String())
	assert.Equal(t, LogEntry{}, r.Last())

	r.Log(logx.LevelDebug, "")
	r.Log(logx.LevelError, "msg")
	r.Log(logx.LevelInfo, "", "k1", "v1", "k2", 2, 3)

	entries := r.Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, logx.LevelDebug, entries[0].Level)
	assert.Empty(t, entries[0].Message)
	assert.Empty(t, entries[0].Fields)

	assert.Equal(t, logx.LevelError, entries[1].Level)
	assert.Equal(t, "msg", entries[1].Message)

	assert.Equal(t, logx.LevelInfo, entries[2].Level)
	assert.Equal(t, "v1", entries[2].Fields["k1"])
	assert.Equal(t, "2", entries[2].Fields["k2"])
	assert.Equal(t, "3", entries[2].Fields["UNKNOWN"]) // 落单的 key 。

	assert.Equal(t, entries[2], r.Last())
	assert.Contains(t, r.String(), "level=ERROR message=msg")
}

func TestLogRecorder_LogFn(t *testing.T) {
	r := NewLogRecorder()
	r.LogFn(logx.LevelWarn, func() (string, []interface{}) {
		return "lazy", []interface{}{"k", "v"}
	})

	last := r.Last()
	assert.Equal(t, logx.LevelWarn, last.Level)
	assert.Equal(t, "lazy", last.Message)
	assert.Equal(t, "v", last.Fields["k"])
}
