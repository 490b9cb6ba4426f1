package restapi

import (
	"net/http"
	"strings"

	"github.com/cmstar/go-logx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RestEngine 表示一个抽象的 HTTP 服务器，基于 ResourceHandler 注册和管理 REST 资源。
type RestEngine struct {
	echo *echo.Echo
}

// NewEngine 创建一个 RestEngine 实例，并完成初始化设置。
// 自动生成并绑定 echo 实例。
func NewEngine() *RestEngine {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	return NewEngineFromEcho(e)
}

// NewEngineFromEcho 创建一个 RestEngine 实例，并绑定给定的 echo 实例。
func NewEngineFromEcho(e *echo.Echo) *RestEngine {
	engine := new(RestEngine)
	engine.echo = e
	return engine
}

// Start 在指定的地址开启 HTTP 服务，开始监听端口并响应请求。在完成各个资源注册后，最后调用此方法开启服务。
//
// addr 地址格式为 IP:PORT ，监听来自于特定 IP ，对于特定端口的请求；若不指定 IP 地址，省略 IP 部分，格式为 :PORT 。
// 如“:12345”监听任何来源对于 12345 端口的请求，“127.0.0.1:12345”则仅监听本机。
func (engine *RestEngine) Start(addr string) {
	engine.echo.Logger.Fatal(engine.echo.Start(addr))
}

// Handle 将一个 ResourceHandler 挂到指定的 URL 上，同时响应集合（ baseURL ）
// 和单个对象（ baseURL/:ident ）两类路径。
// 通过 CreateHandlerFunc(handler, logFinder) 方法创建用于响应请求的过程。
//
// 四个 CRUD 方法和 handler 允许的其他方法都会被注册，由 handler 自行校验允许的方法，
// 以便对不允许的方法返回 405 。
//
// baseURL 为相对路径，以 / 开头。参考 https://echo.labstack.com/guide/routing/
func (engine *RestEngine) Handle(baseURL string, handler ResourceHandler, logFinder logx.LogFinder) {
	handlerFunc := echo.WrapHandler(CreateHandlerFunc(handler, logFinder))

	base := strings.TrimSuffix(baseURL, "/")
	for _, m := range routeMethods(handler.PermittedMethods()) {
		engine.echo.Add(m, base, handlerFunc)
		engine.echo.Add(m, base+"/:ident", handlerFunc)
	}
}

// routeMethods 返回需要注册到路由上的 HTTP 方法：四个 CRUD 方法，加上 permitted 里的其他方法。
func routeMethods(permitted []string) []string {
	methods := []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	for _, m := range permitted {
		m = strings.ToUpper(m)
		if !verbPermitted(m, methods) {
			methods = append(methods, m)
		}
	}
	return methods
}
