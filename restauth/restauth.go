// Package restauth 提供 [restapi.Authentication] 的预定义实现：
// HTTP Basic 认证和 HTTP Digest 认证（ RFC 2617 ）。
package restauth

import (
	"net/http"
	"strings"

	"github.com/cmstar/go-restapi"
)

// writeChallenge 填写认证质询的公共部分： 401 加一个固定的纯文本正文。
// WWW-Authenticate 头由各认证方式在此之前填好。
func writeChallenge(state *restapi.ResourceState) {
	state.ResponseStatus = http.StatusUnauthorized
	state.ResponseContentType = restapi.ContentTypePlainText
	state.ResponseBody = strings.NewReader("Authorization Required")
}

// parseAuthorization 拆出 Authorization 头的 scheme 和其余部分。
// scheme 以大小写不敏感的方式与 wantScheme 比较，不匹配时返回 ok=false 。
func parseAuthorization(r *http.Request, wantScheme string) (rest string, ok bool) {
	header := r.Header.Get(restapi.HttpHeaderAuthorization)
	if header == "" {
		return "", false
	}

	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, wantScheme) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
