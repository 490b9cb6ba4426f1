package restauth

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/cmstar/go-restapi"
	"github.com/google/uuid"
)

// DigestAuthFunc 查询给定认证域内某个用户的 HA1 值，即 md5(username:realm:password) 的
// 十六进制表示。用户不存在时返回空字符串。
//
// 借助 HA1 ，服务端无需存储明文密码。已知明文密码时可用 [DigestPassword] 计算 HA1 。
type DigestAuthFunc func(realm, username string) string

// DigestPassword 计算 Digest 认证所需的 HA1 值，即 md5(username:realm:password) 的十六进制表示。
func DigestPassword(realm, username, password string) string {
	return md5Hex(username + ":" + realm + ":" + password)
}

func md5Hex(v string) string {
	sum := md5.Sum([]byte(v))
	return hex.EncodeToString(sum[:])
}

// digestAuth 实现 HTTP Digest 认证（ RFC 2617 ），仅支持 MD5 算法和 qop=auth 。
type digestAuth struct {
	realm    string
	authFunc DigestAuthFunc

	mu sync.Mutex
	// 记录已发出的 nonce ，值是该 nonce 上一次使用的 nc ，用于拦截重放。
	nonces map[string]string
}

var _ restapi.Authentication = (*digestAuth)(nil)

// NewDigestAuth 返回 HTTP Digest 认证的 [restapi.Authentication] 实现。
//
// 仅支持 MD5 算法和 qop=auth 。每个 nonce 的 nc 必须递增，重复或回退的 nc 使该 nonce 失效，
// 客户端需重新走一遍质询流程。
func NewDigestAuth(authFunc DigestAuthFunc, realm string) restapi.Authentication {
	return &digestAuth{
		realm:    realm,
		authFunc: authFunc,
		nonces:   make(map[string]string),
	}
}

// IsAuthenticated 实现 Authentication.IsAuthenticated() 。
func (x *digestAuth) IsAuthenticated(state *restapi.ResourceState) bool {
	rest, ok := parseAuthorization(state.RawRequest, "Digest")
	if !ok {
		return false
	}

	params := parseDigestParams(rest)
	if params["realm"] != x.realm {
		return false
	}
	if params["qop"] != "auth" {
		return false
	}

	username := params["username"]
	nonce := params["nonce"]
	nc := params["nc"]
	if username == "" || nonce == "" || nc == "" {
		return false
	}

	// uri 参数必须指向当前请求的路径，否则截获的凭据可被重放到其他资源上。
	uriPath, _, _ := strings.Cut(params["uri"], "?")
	if uriPath != state.RawRequest.URL.Path {
		return false
	}

	if !x.checkNonceCount(nonce, nc) {
		return false
	}

	ha1 := x.authFunc(x.realm, username)
	if ha1 == "" {
		return false
	}

	ha2 := md5Hex(state.RawRequest.Method + ":" + params["uri"])
	expected := md5Hex(strings.Join([]string{
		ha1, nonce, nc, params["cnonce"], params["qop"], ha2,
	}, ":"))

	if params["response"] != expected {
		// 应答对不上说明凭据有问题，该 nonce 一并作废。
		x.invalidateNonce(nonce)
		return false
	}

	restapi.SetAuthUser(state, username)
	return true
}

// Challenge 实现 Authentication.Challenge() 。
func (x *digestAuth) Challenge(state *restapi.ResourceState) {
	nonce := md5Hex(uuid.NewString())
	opaque := md5Hex(uuid.NewString())

	x.mu.Lock()
	x.nonces[nonce] = ""
	x.mu.Unlock()

	state.SetResponseHeader(restapi.HttpHeaderWWWAuthenticate,
		fmt.Sprintf(`Digest realm=%q, qop="auth", nonce=%q, opaque=%q`, x.realm, nonce, opaque))
	writeChallenge(state)
}

// invalidateNonce 移除一个 nonce ，使其不能再被使用。
func (x *digestAuth) invalidateNonce(nonce string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.nonces, nonce)
}

// checkNonceCount 校验 nonce 是已发出的，且 nc 比前一次大。不满足时移除该 nonce 。
func (x *digestAuth) checkNonceCount(nonce, nc string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	prev, ok := x.nonces[nonce]
	if !ok {
		return false
	}

	if prev == "" {
		prev = "00000000"
	}

	// nc 是定长的十六进制计数（如 00000001 ），可直接按字符串比较大小。
	if nc <= prev {
		delete(x.nonces, nonce)
		return false
	}

	x.nonces[nonce] = nc
	return true
}

// parseDigestParams 解析 Authorization 头 Digest 后面逗号分隔的 k=v 参数表，去掉值上的引号。
func parseDigestParams(v string) map[string]string {
	params := make(map[string]string)
	for _, part := range strings.Split(v, ",") {
		k, val, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		params[k] = strings.Trim(val, `"`)
	}
	return params
}
