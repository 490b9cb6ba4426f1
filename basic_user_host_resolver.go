package restapi

import (
	"strings"
)

// basicUserHostResolver 提供 UserHostResolver 的标准实现。
type basicUserHostResolver struct {
}

// NewBasicUserHostResolver 返回一个预定义的 UserHostResolver 的标准实现。
// 当实现一个 ResourceHandler 时，可基于此实例实现 UserHostResolver 。
func NewBasicUserHostResolver() UserHostResolver {
	return &basicUserHostResolver{}
}

// FillUserHost 实现 UserHostResolver.FillUserHost() 。
func (r *basicUserHostResolver) FillUserHost(state *ResourceState) {
	// HTTP 服务经常通过反向代理访问，可能转好几层，客户端原始 IP 在 X-Forwarded-For 头的第一段。
	ip := state.RawRequest.Header.Get("X-Forwarded-For")
	if ip == "" {
		// 没经过代理，直接取连接的远端地址，一般是“IP:PORT”，IPv6 下本地地址是“[::1]:port”。
		ip = state.RawRequest.RemoteAddr
	}

	// ipv6 的本地地址表示是“::1”或“[::1]”，统一转成"127.0.0.1"，以便于统计分析。
	ip = strings.Replace(ip, "::1", "127.0.0.1", 1)

	// 多段时只要第一段。
	parts := strings.Split(ip, ",")
	ip = strings.TrimSpace(parts[0])

	// 带端口的，去掉端口。上面已经替换了“::1”，除端口外应该没有冒号了。
	if colonIdx := strings.Index(ip, ":"); colonIdx > 0 {
		ip = ip[:colonIdx]
	}

	// 还可能有“[]”包裹，也去掉。
	if len(ip) > 2 && ip[0] == '[' && ip[len(ip)-1] == ']' {
		ip = ip[1 : len(ip)-1]
	}

	state.UserHost = ip
}
