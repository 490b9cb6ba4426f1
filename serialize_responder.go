package restapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
)

// SerializeResponder 基于序列化器注册表实现 Responder ，
// 将资源对象渲染为注册过的数据格式，如 JSON 、 XML 。
type SerializeResponder struct {
	// Format 是序列化格式的名称，对应 RegisterSerializer() 的名称。
	Format string

	// ContentType 指定返回的 Content-Type 。为空时使用序列化器自己的 Mimetype() 。
	ContentType string

	// PaginateBy 指定列表输出时每页的元素数量。 0 表示不分页，输出全部元素。
	// 分页时，页码从 URL 参数 page 读取，默认第 1 页；非法或超出范围的页码得到 404 。
	PaginateBy int

	// AllowEmpty 为 true 时，空集合的第 1 页输出空列表而不是 404 。仅在分页时有意义。
	AllowEmpty bool

	// ExposeFields 指定可被输出的字段名称（ Entity.Fields 里的名称）。
	// 为空表示全部输出；否则不在列表内的字段在序列化前被去除。
	ExposeFields []string
}

var _ Responder = (*SerializeResponder)(nil)

// NewSerializeResponder 返回渲染指定格式的 SerializeResponder 。
// 格式须已通过 RegisterSerializer() 注册。
func NewSerializeResponder(format string) *SerializeResponder {
	return &SerializeResponder{Format: format}
}

// NewJsonResponder 返回渲染 JSON 格式的 SerializeResponder 。
func NewJsonResponder() *SerializeResponder {
	return NewSerializeResponder(FormatJson)
}

// NewXmlResponder 返回渲染 XML 格式的 SerializeResponder 。
func NewXmlResponder() *SerializeResponder {
	return NewSerializeResponder(FormatXml)
}

// Mimetype 实现 Responder.Mimetype() 。
func (x *SerializeResponder) Mimetype() string {
	if x.ContentType != "" {
		return x.ContentType
	}

	if s, ok := GetSerializer(x.Format); ok {
		return s.Mimetype()
	}
	return ContentTypeNone
}

// WriteElement 实现 Responder.WriteElement() 。单个对象按一个元素的列表序列化。
func (x *SerializeResponder) WriteElement(state *ResourceState, elem Entity) {
	x.render(state, []Entity{elem})
}

// WriteList 实现 Responder.WriteList() 。
func (x *SerializeResponder) WriteList(state *ResourceState, list []Entity) {
	if x.PaginateBy <= 0 {
		x.render(state, list)
		return
	}

	page := 1
	if v, ok := state.Query.Get("page"); ok {
		p, err := strconv.Atoi(v)
		if err != nil {
			x.WriteError(state, http.StatusNotFound, nil)
			return
		}
		page = p
	}

	start := (page - 1) * x.PaginateBy
	if page < 1 || start >= len(list) {
		if page == 1 && x.AllowEmpty {
			x.render(state, nil)
			return
		}
		x.WriteError(state, http.StatusNotFound, nil)
		return
	}

	end := start + x.PaginateBy
	if end > len(list) {
		end = len(list)
	}
	x.render(state, list[start:end])
}

// WriteError 实现 Responder.WriteError() ：给定的状态码加上可读的错误消息正文。
func (x *SerializeResponder) WriteError(state *ResourceState, statusCode int, errs ValidationErrors) {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "Error %d", statusCode)
	if len(errs) > 0 {
		buf.WriteString("\n\nErrors:\n")
		buf.WriteString(errs.AsText())
	}

	state.ResponseStatus = statusCode
	state.ResponseBody = buf
	state.ResponseContentType = x.Mimetype()
}

func (x *SerializeResponder) render(state *ResourceState, entities []Entity) {
	s, ok := GetSerializer(x.Format)
	if !ok {
		PanicResourceError(state, nil, "serializer not registered: %s", x.Format)
	}

	entities = x.restrictFields(entities)

	buf := new(bytes.Buffer)
	if err := s.Serialize(buf, entities); err != nil {
		PanicResourceError(state, err, "serialize %s", x.Format)
	}

	state.ResponseBody = buf
	state.ResponseContentType = x.Mimetype()
}

// restrictFields 按 ExposeFields 去除不可被输出的字段。
func (x *SerializeResponder) restrictFields(entities []Entity) []Entity {
	if len(x.ExposeFields) == 0 {
		return entities
	}

	allowed := make(map[string]bool, len(x.ExposeFields))
	for _, f := range x.ExposeFields {
		allowed[f] = true
	}

	result := make([]Entity, len(entities))
	for i, e := range entities {
		fields := make([]EntityField, 0, len(e.Fields))
		for _, f := range e.Fields {
			if allowed[f.Name] {
				fields = append(fields, f)
			}
		}
		e.Fields = fields
		result[i] = e
	}
	return result
}
