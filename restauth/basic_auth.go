package restauth

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cmstar/go-restapi"
)

// BasicAuthFunc 校验一对用户名和密码，返回是否通过认证。
type BasicAuthFunc func(username, password string) bool

// basicAuth 实现 HTTP/1.0 Basic 认证。
type basicAuth struct {
	realm    string
	authFunc BasicAuthFunc
}

var _ restapi.Authentication = (*basicAuth)(nil)

// NewBasicAuth 返回 HTTP/1.0 Basic 认证的 [restapi.Authentication] 实现。
//
// authFunc 校验用户名和密码； realm 是认证域的标识，体现在质询的 WWW-Authenticate 头上。
func NewBasicAuth(authFunc BasicAuthFunc, realm string) restapi.Authentication {
	return &basicAuth{
		realm:    realm,
		authFunc: authFunc,
	}
}

// IsAuthenticated 实现 Authentication.IsAuthenticated() 。
func (x *basicAuth) IsAuthenticated(state *restapi.ResourceState) bool {
	rest, ok := parseAuthorization(state.RawRequest, "Basic")
	if !ok {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return false
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return false
	}

	if !x.authFunc(username, password) {
		return false
	}

	restapi.SetAuthUser(state, username)
	return true
}

// Challenge 实现 Authentication.Challenge() 。
func (x *basicAuth) Challenge(state *restapi.ResourceState) {
	state.SetResponseHeader(restapi.HttpHeaderWWWAuthenticate,
		fmt.Sprintf("Basic realm=%q", x.realm))
	writeChallenge(state)
}
