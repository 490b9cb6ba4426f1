package restapi

import (
	"io"
	"net/http"

	"github.com/cmstar/go-logx"
)

// ResourceState 用于记录一个请求的处理流程中的数据。每个请求使用一个新的 ResourceState 。
// 处理过程采用管道模式，每个步骤从 ResourceState 获取所需数据，并将处理结果写回 ResourceState 。
// 当处理过程结束后，以 Response 开头的字段应被填充。
type ResourceState struct {
	// RawRequest 是原始的 HTTP 请求。对应 http.Handler 的参数。
	RawRequest *http.Request

	// RawResponse 用于写入 HTTP 回执。对应 http.Handler 的参数。
	RawResponse http.ResponseWriter

	// Query 以大小写不敏感的方式访问 URL 上的参数，如分页参数 page 。
	Query QueryString

	// Handler 当前的 ResourceHandler 。
	Handler ResourceHandler

	// Logger 用于接收当前请求的处理流程中需记录的日志。可以为 nil ，表示不记录日志。
	Logger logx.Logger

	// Ident 记录请求的资源对象的标识。为空表示请求的是资源集合。
	// IdentResolver 接口定义了初始化此字段的方法。
	Ident string

	// UserHost 记录发起 HTTP 请求的客户端 IP 地址。
	// UserHostResolver 接口定义了初始化此字段的方法。
	UserHost string

	// Data 记录 CRUD 过程的输出：单个对象是 Entity ，集合是 []Entity 。
	// 没有内容可输出（如重定向）时为 nil 。
	Data any

	// Error 记录处理过程中产生的错误，包括各环节 panic 的错误。没有错误时为 nil 。
	// 错误由 Responder.WriteError() 渲染为对应的报文。
	Error error

	// 输出日志时的日志级别。若为 0 ，则使用默认级别（由 [ResourceLogger] 决定）。
	LogLevel logx.Level

	// LogMessage 用于记录各个处理流程中的日志信息，用于在 [ResourceLogger] 中的输出。
	// 最终日志的输出由 [ResourceLogger] 决定，这只是一个缓冲（ buffer ）。
	// key-value 对，与 [logx.Logger.Log] 的 keyValues 参数定义一致。
	LogMessage []any

	// ResponseStatus 对应返回的 HTTP 状态码。 0 等同于 200 。
	ResponseStatus int

	// ResponseHeader 记录需要额外返回的 HTTP 头，如 Allow 、 Location 、 WWW-Authenticate 。
	ResponseHeader http.Header

	// ResponseBody 提供实际返回的 HTTP body 的数据。若为 nil ，则 HTTP 没有 body 。
	ResponseBody io.Reader

	// ResponseContentType 对应为返回的 HTTP 的 Content-Type 头的值。
	ResponseContentType string

	// customData 用于记录没有预定义的数据，即不在其他字段中体现的数据，由各处理过程自行决定。
	customData []struct{ k, v any }
}

// NewState 创建一个新的 ResourceState ，每个请求应使用一个新的 ResourceState 。
func NewState(w http.ResponseWriter, r *http.Request, handler ResourceHandler) *ResourceState {
	s := &ResourceState{
		Handler:     handler,
		RawRequest:  r,
		RawResponse: w,
	}
	s.Query = ParseQueryString(r.URL.RawQuery)
	return s
}

// SetResponseHeader 设置一个需要返回的 HTTP 头。
func (s *ResourceState) SetResponseHeader(name, value string) {
	if s.ResponseHeader == nil {
		s.ResponseHeader = make(http.Header)
	}
	s.ResponseHeader.Set(name, value)
}

// SetCustomData 在当前 [*ResourceState] 中存储一个自定义的值。
// 原理和 [context.WithValue] 类似， key 必须是可比较的。
func (s *ResourceState) SetCustomData(key, value any) {
	s.customData = append(s.customData, struct{ k, v any }{key, value})
}

// GetCustomData 读取 [SetCustomData] 方法存放的值。返回一个 bool 值表示 key 是否存在。
func (s *ResourceState) GetCustomData(key any) (any, bool) {
	data := s.customData
	for i := 0; i < len(data); i++ {
		if data[i].k == key {
			return data[i].v, true
		}
	}
	return nil, false
}

// 用作在 ResourceState 上存储自定义数据的 key 。
type customDataKey int

const (
	// 自定义字段。记录通过认证的用户名。
	customData_AuthUser customDataKey = iota
)

// SetAuthUser 记录通过认证的用户名，供日志等后续环节读取。
// 通常由 Authentication.IsAuthenticated() 在认证通过后调用。
func SetAuthUser(state *ResourceState, username string) {
	state.SetCustomData(customData_AuthUser, username)
}

// GetAuthUser 读取 SetAuthUser 记录的用户名。没有时返回空字符串。
func GetAuthUser(state *ResourceState) string {
	v, ok := state.GetCustomData(customData_AuthUser)
	if !ok {
		return ""
	}
	return v.(string)
}
