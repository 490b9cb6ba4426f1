package restapi

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/cmstar/go-errx"
	"github.com/cmstar/go-logx"
)

/*
当前文件提供 restapi 的相关错误类型及处理错误的方法。
*/

// ValidationErrors 记录按字段分组的校验错误信息。
type ValidationErrors map[string][]string

// Add 追加一个字段的错误信息。
func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// AsText 将错误信息格式化为可读文本。每个字段一行，其下逐行列出该字段的错误：
//
//	* field
//	  * message
//
// 字段按名称排序，以获得稳定的输出。
func (e ValidationErrors) AsText() string {
	if len(e) == 0 {
		return ""
	}

	fields := make([]string, 0, len(e))
	for k := range e {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	b := new(strings.Builder)
	for _, f := range fields {
		b.WriteString("* ")
		b.WriteString(f)
		b.WriteByte('\n')
		for _, m := range e[f] {
			b.WriteString("  * ")
			b.WriteString(m)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// withinStateError 描述一个请求的处理过程中的错误，用作其他错误的内嵌结构。
type withinStateError struct {
	errx.ErrorCause

	State   *ResourceState // State 记录当前的请求状态。
	Message string         // Message 记录错误的描述信息。
}

var _ error = (*withinStateError)(nil)

// Error 实现 error 接口。
func (e withinStateError) Error() string {
	return e.Message
}

// ResourceError 用于表示资源处理过程中的内部错误，这些错误通常表示代码存在问题（如编码 bug）。
// 这些问题不能在程序生命周期中自动解决，通常使用 panic 中断程序。
type ResourceError struct {
	withinStateError
}

// CreateResourceError 创建一个 ResourceError 。
// message 和 args 指定描述信息，使用 fmt.Sprintf() 格式化。 cause 是引起此错误的错误，可以为 nil 。
// message 会体现在 ResourceError.Error() ，格式为：
//
//	message:: cause.Error()
func CreateResourceError(state *ResourceState, cause error, message string, args ...any) ResourceError {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	if cause != nil {
		if message != "" {
			message += ":: "
		}
		message += cause.Error()
	}

	e := ResourceError{
		withinStateError{
			ErrorCause: errx.ErrorCause{Err: cause},
			State:      state,
			Message:    message,
		},
	}
	return e
}

// PanicResourceError 使用 CreateResourceError 创建 ResourceError ，并直接 panic 。
// 当处理流程遇见不应该发生（如编码 bug）的异常情况时，可使用此方法中断处理过程。
func PanicResourceError(state *ResourceState, cause error, message string, args ...any) {
	e := CreateResourceError(state, cause, message, args...)
	panic(e)
}

// BadRequestError 记录一个不正确的请求，例如表单数据不符合要求。
// 这些错误是外部请求而不是编码导致（假设没 bug ）的，处理流程应能够正确处理这些错误并返回对应结果。
// 可以为 BadRequestError 指定描述信息和按字段分组的校验错误，它们可能作为返回值，被请求者看到。
type BadRequestError struct {
	withinStateError

	// Errors 记录按字段分组的校验错误，可为 nil 。
	Errors ValidationErrors
}

// CreateBadRequestError 创建一个 BadRequestError 。
// message 和 args 指定其消息，使用 fmt.Sprintf() 格式化。
// 描述信息可能作为返回值，被请求者看到，故可能不应当过多暴露程序细节。更具体的错误可以放在 cause 上。
func CreateBadRequestError(state *ResourceState, cause error, message string, args ...any) BadRequestError {
	message = fmt.Sprintf(message, args...)
	e := BadRequestError{
		withinStateError: withinStateError{
			ErrorCause: errx.ErrorCause{Err: cause},
			State:      state,
			Message:    message,
		},
	}
	return e
}

// CreateValidationError 创建一个带有按字段分组的校验错误的 BadRequestError 。
func CreateValidationError(state *ResourceState, errs ValidationErrors) BadRequestError {
	e := CreateBadRequestError(state, nil, "validation error")
	e.Errors = errs
	return e
}

// NotFoundError 表示请求的资源对象不存在，对应 404 。
// 资源未实现的 CRUD 过程也以此错误表示，见 NotFoundCrud 。
type NotFoundError struct {
	withinStateError
}

// CreateNotFoundError 创建一个 NotFoundError 。 message 为空时使用默认的描述信息。
func CreateNotFoundError(state *ResourceState, message string) NotFoundError {
	if message == "" {
		message = "not found"
	}
	return NotFoundError{
		withinStateError{
			State:   state,
			Message: message,
		},
	}
}

// MethodNotAllowedError 表示请求使用了资源不允许的 HTTP 方法，对应 405 。
type MethodNotAllowedError struct {
	withinStateError

	// Methods 记录资源允许的 HTTP 方法，体现在回执的 Allow 头上。
	Methods []string
}

// CreateMethodNotAllowedError 创建一个 MethodNotAllowedError 。
func CreateMethodNotAllowedError(state *ResourceState, permittedMethods []string) MethodNotAllowedError {
	return MethodNotAllowedError{
		withinStateError: withinStateError{
			State:   state,
			Message: "method not allowed, permitted: " + strings.Join(permittedMethods, ", "),
		},
		Methods: permittedMethods,
	}
}

// DescribeError 根据给定的错误，返回错误的日志级别、名称和错误描述。如果 err 为 nil ，返回 logx.LevelInfo 和空字符串。
// 此方法可用于搭配 ResourceLogger.Log() 输出带有错误描述的日志。
func DescribeError(err error) (logLevel logx.Level, errTypeName, errDescription string) {
	if err == nil {
		return logx.LevelInfo, "", ""
	}

	errTypeName = getErrTypeName(err)
	errDescription = errx.Describe(err)

	logLevel = logx.LevelError
	switch err.(type) {
	case errx.BizError:
		logLevel = logx.LevelWarn
	case NotFoundError, MethodNotAllowedError:
		// 是请求方的问题，而且 REST 下很常见，不按本方错误记。
		logLevel = logx.LevelWarn
	case BadRequestError:
		logLevel = logx.LevelError
	case ResourceError:
		// 属于代码不能正常执行的严重问题。
		logLevel = logx.LevelFatal
	}

	return
}

func getErrTypeName(err error) string {
	// 取 error 内在的实际类型的名称。
	typ := reflect.TypeOf(err)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	name := typ.Name()

	// 如果是个公开类型（首字母大写），直接用其名称。
	if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
		return name
	}

	// 非公开的错误，如果是几个预定义且常见的，返回其接口名称。
	if _, ok := err.(errx.BizError); ok {
		return "BizError"
	}
	if _, ok := err.(errx.StackfulError); ok {
		return "StackfulError"
	}
	return name
}
