package restapi

import "github.com/cmstar/go-logx"

// LogSetup 定义一个过程，此过程用于向 [ResourceState] 填充日志信息。
type LogSetup interface {
	// Setup 可将日志信息写入 [ResourceState.LogLevel] 和 [ResourceState.LogMessage] 。
	Setup(state *ResourceState)
}

// LogSetupFunc 是 [LogSetup.Setup] 的函数签名。
type LogSetupFunc func(state *ResourceState)

type logSetupWrap struct {
	f LogSetupFunc
}

// ToLogSetup 将 [LogSetupFunc] 包装成 [LogSetup] 。
func ToLogSetup(f LogSetupFunc) LogSetup {
	return logSetupWrap{f}
}

// Setup 实现 [LogSetup.Setup] 。
func (x logSetupWrap) Setup(state *ResourceState) {
	x.f(state)
}

// LogSetupPipeline 是 [LogSetup] 组成的管道，实现 [ResourceLogger] 。
//
// 在 [ResourceLogger.Log] 时，依次执行每个 [LogSetup.Setup] ，
// 并将得到的 [ResourceState.LogLevel] 和 [ResourceState.LogMessage] 输出到日志。
// 若 [ResourceState.LogLevel] 未被设置，默认使用 [logx.LevelInfo] 级别。
type LogSetupPipeline []LogSetup

var _ ResourceLogger = (*LogSetupPipeline)(nil)

// NewLogSetupPipeline 返回一个 [LogSetupPipeline] 。
func NewLogSetupPipeline(s ...LogSetup) LogSetupPipeline {
	return LogSetupPipeline(s)
}

// Log 实现 [ResourceLogger.Log] 。
func (p LogSetupPipeline) Log(state *ResourceState) {
	logger := state.Logger
	if logger == nil || len(p) == 0 {
		return
	}

	for _, v := range p {
		v.Setup(state)
	}

	lv := state.LogLevel
	if state.LogLevel == 0 {
		lv = logx.LevelInfo
	}

	logger.Log(lv, "", state.LogMessage...)
}
