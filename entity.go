package restapi

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// Entity 是序列化使用的信封结构：模型名称、主键和有序的字段表。
// Responder 接收 Entity 而不是原始的模型对象，使数据格式与模型的存储方式解耦。
type Entity struct {
	// Model 是模型的名称，如 poll 。
	Model string

	// Pk 是对象的主键值。
	Pk any

	// Fields 按声明顺序记录对象的其余字段。
	Fields []EntityField
}

// EntityField 是 Entity 中的一个字段。
type EntityField struct {
	Name  string
	Value any
}

// MarshalJSON 实现 json.Marshaler ，按 pk 、 model 、 fields 的顺序输出，
// 并保持 Fields 的声明顺序。
func (e Entity) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.WriteString(`{"pk":`)
	pk, err := json.Marshal(e.Pk)
	if err != nil {
		return nil, err
	}
	buf.Write(pk)

	buf.WriteString(`,"model":`)
	model, err := json.Marshal(e.Model)
	if err != nil {
		return nil, err
	}
	buf.Write(model)

	buf.WriteString(`,"fields":{`)
	for i, f := range e.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

// MakeEntity 通过反射将一个模型对象转为 Entity 。
// obj 须是 struct 或其指针，否则 panic ； identField 指定作为主键的字段名称（按 Go 字段名），
// 其值进入 Entity.Pk ，其余公开字段按声明顺序进入 Entity.Fields 。
// 内嵌（ anonymous ）的 struct 字段会被展开。
//
// 模型名称取 struct 的类型名称，字段名称取字段的名称，均转为小写下划线形式（如 PubDate -> pub_date ）。
func MakeEntity(obj any, identField string) Entity {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		PanicResourceError(nil, nil, "entity must be a struct, got %T", obj)
	}

	e := Entity{Model: SnakeName(v.Type().Name())}
	appendEntityFields(&e, v, identField)
	return e
}

func appendEntityFields(e *Entity, v reflect.Value, identField string) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		fv := v.Field(i)
		if f.Anonymous && fv.Kind() == reflect.Struct {
			appendEntityFields(e, fv, identField)
			continue
		}

		if f.Name == identField {
			e.Pk = fv.Interface()
			continue
		}

		e.Fields = append(e.Fields, EntityField{
			Name:  SnakeName(f.Name),
			Value: fv.Interface(),
		})
	}
}

// SnakeName 将 Go 风格的名称转为小写下划线形式，如 PubDate -> pub_date 、 PollID -> poll_id 。
// 连续的大写字母被视为一个单词的缩写。
func SnakeName(name string) string {
	b := new(strings.Builder)

	runes := []rune(name)
	length := len(runes)
	for i := 0; i < length; i++ {
		r := runes[i]
		if r < 'A' || r > 'Z' {
			b.WriteRune(r)
			continue
		}

		// 单词的边界：大写字母前是小写字母；或者缩写结束，即大写字母后跟着小写字母。
		if i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < length && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || (nextLower && runes[i-1] >= 'A' && runes[i-1] <= 'Z') {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r - 'A' + 'a')
	}

	return b.String()
}
