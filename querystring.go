package restapi

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryString 以大小写不敏感的方式访问 URL 上的参数。
type QueryString struct {
	// Named 记录全部参数。所有参数名称都会被转为小写，以便以大小写不敏感的方式匹配参数；
	// 相同名称的参数出现多个时，会被以逗号拼接起来，如“?a=1&a=2”结果为“a=1,2”。
	Named map[string]string
}

// Get 以大小写不敏感方式获取指定名称的参数。返回一个 bool 表示该名称的参数是否存在。
func (qs QueryString) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	v, ok := qs.Named[name]
	if ok {
		return v, true
	}
	return "", false
}

// GetInt 以大小写不敏感方式获取指定名称的参数，并转为 int 。
// 第二个返回值表示参数是否存在且为合法的整数。
func (qs QueryString) GetInt(name string) (int, bool) {
	v, ok := qs.Get(name)
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseQueryString 解析 URL 上的参数表。给定的 queryString 可以以“?”开头，也可以不带。
// 参数名称被统一转为小写；同名参数用逗号拼接；URL 解码失败的参数被忽略，相当于参数不存在。
func ParseQueryString(queryString string) QueryString {
	result := QueryString{Named: make(map[string]string)}

	queryString = strings.TrimPrefix(queryString, "?")
	if queryString == "" {
		return result
	}

	// ParseQuery 解码失败时仍给出解析成功的部分，失败的参数相当于不存在。
	values, _ := url.ParseQuery(queryString)

	for name, vs := range values {
		name = strings.ToLower(name)
		joined := strings.Join(vs, ",")

		old, ok := result.Named[name]
		if ok {
			result.Named[name] = old + "," + joined
		} else {
			result.Named[name] = joined
		}
	}

	return result
}
