// restapitest 包提供用于测试 restapi 包的辅助方法。
package restapitest

import (
	"io"
	"net/http/httptest"
	"strings"

	"github.com/cmstar/go-restapi"
)

// NoOpHandler 是一个空的 restapi.ResourceHandler ，用于测试用例中不需要访问其方法只需要一个实例占位的场景。
var NoOpHandler restapi.ResourceHandler = &restapi.ResourceHandlerWrapper{}

// NewStateSetup 用于设置用于测试 HTTP 请求。
type NewStateSetup struct {
	HttpMethod  string            // HTTP 请求的方法， GET/POST/PUT/DELETE 。若未给定值，默认为 GET 。
	ContentType string            // 指定 HTTP Content-Type 头，若未给定值，则不会添加此字段。
	BodyString  string            // 指定请求的 body ，优先级高于 BodyReader 。给定值时 BodyReader 被忽略。
	BodyReader  io.Reader         // 指定请求的 body ，仅在 BodyString 为空时生效。
	Headers     map[string]string // 指定额外的 HTTP 头。
}

// NewStateForTest 基于 httptest 包创建用于测试 HTTP 请求的相关实例。
func NewStateForTest(handler restapi.ResourceHandler, url string, setup NewStateSetup) (*restapi.ResourceState, *httptest.ResponseRecorder) {
	httpMethod := setup.HttpMethod
	if httpMethod == "" {
		httpMethod = "GET"
	}

	req := httptest.NewRequest(httpMethod, url, nil)

	if setup.ContentType != "" {
		req.Header.Add(restapi.HttpHeaderContentType, setup.ContentType)
	}

	for k, v := range setup.Headers {
		req.Header.Add(k, v)
	}

	if setup.BodyString != "" {
		req.Body = io.NopCloser(strings.NewReader(setup.BodyString))
	} else if setup.BodyReader != nil {
		readCloser, ok := setup.BodyReader.(io.ReadCloser)
		if ok {
			req.Body = readCloser
		} else {
			req.Body = io.NopCloser(setup.BodyReader)
		}
	}

	rec := httptest.NewRecorder()
	state := restapi.NewState(rec, req, handler)
	return state, rec
}
