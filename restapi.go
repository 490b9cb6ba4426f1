// restapi 包提供一个面向资源（ REST ）的轻量级 WebAPI 框架：
// 将 HTTP 方法映射到资源的 CRUD 过程（ GET→Read 、 POST→Create 、 PUT→Update 、 DELETE→Delete ），
// 并通过 Responder 将模型对象渲染为序列化格式，如 JSON/XML 。
package restapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cmstar/go-errx"
	"github.com/cmstar/go-logx"
)

/*
当前文件包含框架内的基础接口定义和执行流程。
*/

// ResourceHandler 定义一个 REST 资源处理过程中的抽象环节。
// CreateHandlerFunc() 返回一个函数，基于 ResourceHandler 实现完整的处理过程。
type ResourceHandler interface {
	ResourceReader
	ResourceCreator
	ResourceUpdater
	ResourceDeleter
	IdentResolver
	UserHostResolver
	Responder
	ResourceLogger

	// Name 获取当前 ResourceHandler 的标识符。名称可以是任意值，但应尽量给定容易识别的名称，
	// 它会作为日志名称的一部分。
	Name() string

	// PermittedMethods 返回当前资源允许的 HTTP 方法。如 GET 、 POST 、 PUT 、 DELETE 。
	// 不在此列表内的请求得到 405 ，并在 Allow 头中列出允许的方法。
	PermittedMethods() []string

	// Authentication 返回当前资源的认证过程。可返回 nil ，表示不做认证。
	Authentication() Authentication
}

// ResourceHandlerWrapper 用于组装各个接口，以实现 ResourceHandler 。
// 各种资源的实现中，可使用此类型作为脚手架，组装各个内嵌接口。
type ResourceHandlerWrapper struct {
	ResourceReader
	ResourceCreator
	ResourceUpdater
	ResourceDeleter
	IdentResolver
	UserHostResolver
	Responder
	ResourceLogger

	// HandlerName 是 ResourceHandler.Name() 的返回值。
	HandlerName string

	// Methods 是 ResourceHandler.PermittedMethods() 的返回值。
	Methods []string

	// Auth 是 ResourceHandler.Authentication() 的返回值，可为 nil 。
	Auth Authentication
}

var _ ResourceHandler = (*ResourceHandlerWrapper)(nil)

// Name 实现 ResourceHandler.Name() 。
func (w *ResourceHandlerWrapper) Name() string {
	return w.HandlerName
}

// PermittedMethods 实现 ResourceHandler.PermittedMethods() 。
func (w *ResourceHandlerWrapper) PermittedMethods() []string {
	return w.Methods
}

// Authentication 实现 ResourceHandler.Authentication() 。
func (w *ResourceHandlerWrapper) Authentication() Authentication {
	return w.Auth
}

// ResourceReader 处理对单个资源对象或资源集合的读取，对应 HTTP GET 。
type ResourceReader interface {
	// Read 读取 ApiState.Ident 指定的对象（为空时读取集合），将结果填入 ResourceState.Data 。
	// 对象不存在时，填写 ResourceState.Error 。
	Read(state *ResourceState)
}

// ResourceCreator 处理资源对象的创建，对应 HTTP POST 。
type ResourceCreator interface {
	// Create 基于请求的表单数据创建对象。表单数据已由框架解析到 Request.PostForm 。
	// 创建成功后通常使用 Redirect() 重定向到新对象的 URL 。
	Create(state *ResourceState)
}

// ResourceUpdater 处理资源对象的修改，对应 HTTP PUT 。
type ResourceUpdater interface {
	// Update 修改 ResourceState.Ident 指定的对象。 PUT 的表单数据已由框架解析（见 LoadPutAndFiles ）。
	Update(state *ResourceState)
}

// ResourceDeleter 处理资源对象的删除，对应 HTTP DELETE 。
type ResourceDeleter interface {
	// Delete 删除 ResourceState.Ident 指定的对象，成功后通常重定向到集合的 URL 。
	Delete(state *ResourceState)
}

// IdentResolver 用于从当前 HTTP 请求中，解析得到目标资源对象的标识。
type IdentResolver interface {
	// FillIdent 从请求的 URL 里解析资源对象的标识，填入 ResourceState.Ident ；
	// 请求的是集合时不需要填写。若标识的格式非法，可填写 ResourceState.Error 。
	FillIdent(state *ResourceState)
}

// UserHostResolver 用于获取发起 HTTP 请求的客户端 IP 地址。
// 一个请求可能经过多次代理转发，原始地址通常需要从特定 HTTP 头获取，比如 X-Forwarded-For 。
type UserHostResolver interface {
	// FillUserHost 获取发起 HTTP 请求的客户端 IP 地址，并填入 ResourceState.UserHost 。
	FillUserHost(state *ResourceState)
}

// Responder 将处理结果渲染为 HTTP 回执。不同的数据格式（如 JSON 、 XML ）对应不同的实现。
type Responder interface {
	// WriteElement 渲染单个资源对象，填写 ResourceState 中以 Response 开头的字段。
	WriteElement(state *ResourceState, elem Entity)

	// WriteList 渲染资源对象的集合，填写 ResourceState 中以 Response 开头的字段。
	WriteList(state *ResourceState, list []Entity)

	// WriteError 渲染一个错误回执： statusCode 作为 HTTP 状态码， errs 是可选的校验错误信息。
	WriteError(state *ResourceState, statusCode int, errs ValidationErrors)

	// Mimetype 返回当前数据格式对应的 Content-Type 值。
	Mimetype() string
}

// ResourceLogger 在响应报文输出后，生成日志。
type ResourceLogger interface {
	// Log 根据 ResourceState 的内容生成日志，日志由 ResourceState.Logger 接收。
	// 若 ResourceState.Logger 为 nil ，则不生成日志。
	Log(state *ResourceState)
}

// Authentication 定义资源的认证过程。
type Authentication interface {
	// IsAuthenticated 判断请求是否通过认证。通过时可使用 SetAuthUser() 记录认证的用户名。
	IsAuthenticated(state *ResourceState) bool

	// Challenge 填写要求认证的回执，通常是 401 加上对应的 WWW-Authenticate 头。
	Challenge(state *ResourceState)
}

// CreateHandlerFunc 返回一个封装了给定的 ResourceHandler 的 http.HandlerFunc 。
//
// logFinder 用于获取 Logger ，该 Logger 会赋值给 ResourceState.Logger 。可为 nil 表示不记录日志。
// 每个请求的日志名称即 ResourceHandler.Name() 。
func CreateHandlerFunc(handler ResourceHandler, logFinder logx.LogFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := NewState(w, r, handler)

		handler.FillUserHost(state)
		if logFinder != nil {
			state.Logger = logFinder.Find(handler.Name())
		}

		// 把比较可能 panic 的步骤抽出来，添加一个 defer 捕获错误并填到 state.Error 上，使 panic 后仍
		// 可以预定义的报文返回结果。
		handleRequest(state, handler)

		if !handleResponse(state, handler) {
			// handleResponse 没成功，最大可能是数据是不能序列化的。
			// 尝试清空数据，再输出一次。 state.Error 则被保留下来，能够体现哪里出错。
			// 如果再 panic 就拯救不了了，交给外层框架处理。
			state.Data = nil
			writeErrorResponse(state, handler)
		}

		header := w.Header()
		for k, vs := range state.ResponseHeader {
			for _, v := range vs {
				header.Add(k, v)
			}
		}
		if state.ResponseContentType != "" {
			header.Set(HttpHeaderContentType, state.ResponseContentType)
		}
		if state.ResponseStatus > 0 && state.ResponseStatus != http.StatusOK {
			w.WriteHeader(state.ResponseStatus)
		}
		if state.ResponseBody != nil {
			_, err := io.Copy(w, state.ResponseBody)
			if err != nil {
				PanicResourceError(state, err, "write response body")
			}
		}

		handler.Log(state)
	}
}

func handleRequest(state *ResourceState, handler ResourceHandler) {
	defer handlerPanic(state)

	// 先做认证，没通过就直接给认证质询，不再进入后续环节。
	if auth := handler.Authentication(); auth != nil && !auth.IsAuthenticated(state) {
		auth.Challenge(state)
		return
	}

	verb := strings.ToUpper(state.RawRequest.Method)
	if !verbPermitted(verb, handler.PermittedMethods()) {
		state.Error = CreateMethodNotAllowedError(state, handler.PermittedMethods())
		return
	}

	handler.FillIdent(state)
	if state.Error != nil {
		return
	}

	switch verb {
	case http.MethodGet:
		handler.Read(state)

	case http.MethodPost:
		if err := LoadForm(state.RawRequest); err != nil {
			state.Error = CreateBadRequestError(state, err, "bad form data")
			return
		}
		handler.Create(state)

	case http.MethodPut:
		if err := LoadPutAndFiles(state.RawRequest); err != nil {
			state.Error = CreateBadRequestError(state, err, "bad form data")
			return
		}
		handler.Update(state)

	case http.MethodDelete:
		handler.Delete(state)

	default:
		// 允许列表里的其他方法（如 HEAD ）没有对应的 CRUD 过程，按资源不存在处理。
		state.Error = CreateNotFoundError(state, "")
	}
}

func verbPermitted(verb string, permitted []string) bool {
	for _, m := range permitted {
		if strings.EqualFold(verb, m) {
			return true
		}
	}
	return false
}

func handleResponse(state *ResourceState, handler ResourceHandler) bool {
	defer handlerPanic(state)

	if state.Error != nil {
		writeErrorResponse(state, handler)
		return true
	}

	switch data := state.Data.(type) {
	case nil:
		// 没有数据：重定向或认证质询已经填好报文，或者本来就没有内容可输出。

	case Entity:
		handler.WriteElement(state, data)

	case []Entity:
		handler.WriteList(state, data)

	default:
		PanicResourceError(state, nil, "unsupported data type %T", state.Data)
	}

	return true
}

// writeErrorResponse 将 state.Error 映射为 HTTP 状态码，并通过 Responder 渲染错误报文。
func writeErrorResponse(state *ResourceState, handler ResourceHandler) {
	err := state.Error
	if err == nil {
		err = CreateResourceError(state, nil, "error response without an error")
	}

	var notAllowedErr MethodNotAllowedError
	var notFoundErr NotFoundError
	var badRequestErr BadRequestError
	var bizErr errx.BizError

	switch {
	case errors.As(err, &notAllowedErr):
		state.SetResponseHeader(HttpHeaderAllow, strings.Join(notAllowedErr.Methods, ", "))
		handler.WriteError(state, http.StatusMethodNotAllowed, nil)

	case errors.As(err, &notFoundErr):
		handler.WriteError(state, http.StatusNotFound, nil)

	case errors.As(err, &badRequestErr):
		handler.WriteError(state, http.StatusBadRequest, badRequestErr.Errors)

	case errors.As(err, &bizErr):
		// BizError 的 Code 在 HTTP 状态码范围内时，直接作为状态码返回，实现任意状态码的错误回执。
		status := bizErr.Code()
		if status < 100 || status > 999 {
			status = http.StatusInternalServerError
		}
		handler.WriteError(state, status, ValidationErrors{"error": {bizErr.Message()}})

	default:
		handler.WriteError(state, http.StatusInternalServerError, nil)
	}
}

func handlerPanic(state *ResourceState) {
	r := recover()
	if r == nil {
		return
	}

	// 尽量保留方法调用栈信息，如果没有，就放一个上去。
	switch v := r.(type) {
	case errx.StackfulError: // 含 BizError 。
		state.Error = v
	case error:
		state.Error = errx.Wrap(state.Handler.Name(), v)
	case string:
		state.Error = errx.Wrap(state.Handler.Name(), errors.New(v))
	default:
		// panic 的不是 error 和字符串也应该是个能转成字符串的东西。
		e := fmt.Errorf("%v", v)
		state.Error = errx.Wrap(state.Handler.Name(), e)
	}
}
