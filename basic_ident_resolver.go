package restapi

import (
	"regexp"
	"strings"
)

// 预定义的资源标识格式。
var (
	// IdentPatternNumber 匹配数字型的标识，适用于自增主键。
	IdentPatternNumber = regexp.MustCompile(`^\d+$`)

	// IdentPatternWord 匹配单词型的标识，适用于字符串主键。
	IdentPatternWord = regexp.MustCompile(`^\w+$`)

	// IdentPatternSlug 匹配 slug 型的标识：小写字母、数字、下划线和连字符。
	IdentPatternSlug = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// basicIdentResolver 提供 IdentResolver 的标准实现：从 URL 路径上解析资源对象的标识。
type basicIdentResolver struct {
	baseURL string
	pattern *regexp.Regexp
}

// NewBasicIdentResolver 返回一个预定义的 IdentResolver 的标准实现。
// 资源集合的 URL 是 baseURL ，单个对象的 URL 是 baseURL/ident ，末尾的“/”可有可无。
// ident 部分须匹配 pattern ，不匹配时按资源不存在（ 404 ）处理； pattern 为 nil 时不做校验。
func NewBasicIdentResolver(baseURL string, pattern *regexp.Regexp) IdentResolver {
	return &basicIdentResolver{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		pattern: pattern,
	}
}

// FillIdent 实现 IdentResolver.FillIdent() 。
func (x *basicIdentResolver) FillIdent(state *ResourceState) {
	path := state.RawRequest.URL.Path
	if !strings.HasPrefix(path, x.baseURL) {
		// 路由配置正确时不会出现，出现了按资源不存在处理。
		state.Error = CreateNotFoundError(state, "")
		return
	}

	ident := strings.Trim(path[len(x.baseURL):], "/")
	if ident == "" {
		return
	}

	if x.pattern != nil && !x.pattern.MatchString(ident) {
		state.Error = CreateNotFoundError(state, "")
		return
	}

	state.Ident = ident
}
