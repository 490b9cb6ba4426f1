package restapi

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sync"
	"time"
)

// 预定义的序列化格式的名称。
const (
	FormatJson = "json"
	FormatXml  = "xml"
)

// Serializer 将一组 Entity 序列化为特定的数据格式。
// 通过 RegisterSerializer() 注册后，即可被 SerializeResponder 按格式名称使用。
type Serializer interface {
	// Serialize 将 entities 序列化后写入 w 。
	Serialize(w io.Writer, entities []Entity) error

	// Mimetype 返回该格式默认的 Content-Type 值。
	Mimetype() string
}

var (
	serializersMu sync.RWMutex
	serializers   = map[string]Serializer{
		FormatJson: jsonSerializer{},
		FormatXml:  xmlSerializer{},
	}
)

// RegisterSerializer 注册一个格式的序列化器。重复注册同一个名称时，后注册的覆盖先注册的。
func RegisterSerializer(format string, s Serializer) {
	serializersMu.Lock()
	defer serializersMu.Unlock()
	serializers[format] = s
}

// GetSerializer 返回注册到指定名称的序列化器。返回一个 bool 表示该名称是否被注册过。
func GetSerializer(format string) (Serializer, bool) {
	serializersMu.RLock()
	defer serializersMu.RUnlock()
	s, ok := serializers[format]
	return s, ok
}

// jsonSerializer 实现 json 格式，输出形如：
//
//	[{"pk":1,"model":"poll","fields":{"question":"..."}}]
type jsonSerializer struct{}

func (jsonSerializer) Mimetype() string {
	return ContentTypeJson
}

func (jsonSerializer) Serialize(w io.Writer, entities []Entity) error {
	if entities == nil {
		// 空集合输出 [] 而不是 null 。
		entities = []Entity{}
	}

	data, err := json.Marshal(entities)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// xmlSerializer 实现 xml 格式，输出形如：
//
//	<objects version="1.0">
//	  <object pk="1" model="poll">
//	    <field name="question">...</field>
//	  </object>
//	</objects>
type xmlSerializer struct{}

func (xmlSerializer) Mimetype() string {
	return ContentTypeXml
}

func (xmlSerializer) Serialize(w io.Writer, entities []Entity) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)

	root := xml.StartElement{
		Name: xml.Name{Local: "objects"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "version"}, Value: "1.0"}},
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	for _, e := range entities {
		obj := xml.StartElement{
			Name: xml.Name{Local: "object"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "pk"}, Value: xmlFieldValue(e.Pk)},
				{Name: xml.Name{Local: "model"}, Value: e.Model},
			},
		}
		if err := enc.EncodeToken(obj); err != nil {
			return err
		}

		for _, f := range e.Fields {
			field := xml.StartElement{
				Name: xml.Name{Local: "field"},
				Attr: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: f.Name}},
			}
			if err := enc.EncodeToken(field); err != nil {
				return err
			}
			if err := enc.EncodeToken(xml.CharData(xmlFieldValue(f.Value))); err != nil {
				return err
			}
			if err := enc.EncodeToken(field.End()); err != nil {
				return err
			}
		}

		if err := enc.EncodeToken(obj.End()); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

// xmlFieldValue 返回字段值在 XML 里的文本形式。时间统一用“yyyy-MM-dd HH:mm:ss”格式。
func xmlFieldValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case time.Time:
		return value.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}
