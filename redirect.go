package restapi

import "net/http"

// Redirect 将 state 填充为一个到 location 的重定向回执（ 302 Found ）。
// 创建、更新、删除资源对象成功后，通常重定向到对象或集合对应的 URL 。
func Redirect(state *ResourceState, location string) {
	state.ResponseStatus = http.StatusFound
	state.SetResponseHeader(HttpHeaderLocation, location)
	state.ResponseBody = nil
	state.ResponseContentType = ContentTypeNone
}
