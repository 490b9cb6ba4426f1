package modelapi

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/cmstar/go-restapi"
	"gorm.io/gorm"
)

// collection 基于 gorm 实现一个模型的 CRUD 过程。
type collection struct {
	db         *gorm.DB
	model      reflect.Type // 模型的 struct 类型。
	identField reflect.StructField
	baseURL    string

	modelName   string // 模型名称的小写下划线形式。
	identColumn string // 主键字段对应的数据库列名。
	fields      map[string]reflect.StructField
}

var _ restapi.ResourceReader = (*collection)(nil)
var _ restapi.ResourceCreator = (*collection)(nil)
var _ restapi.ResourceUpdater = (*collection)(nil)
var _ restapi.ResourceDeleter = (*collection)(nil)

// init 基于模型类型初始化查询所需的名称表。
func (x *collection) init() {
	x.modelName = restapi.SnakeName(x.model.Name())
	x.identColumn = restapi.SnakeName(x.identField.Name)

	x.fields = make(map[string]reflect.StructField)
	x.collectFields(x.model)
}

func (x *collection) collectFields(t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			x.collectFields(f.Type)
			continue
		}

		x.fields[restapi.SnakeName(f.Name)] = f
	}
}

// Read 实现 [restapi.ResourceReader.Read] 。
func (x *collection) Read(state *restapi.ResourceState) {
	if state.Ident == "" {
		x.readList(state)
		return
	}

	ptr, ok := x.fetch(state)
	if !ok {
		return
	}
	state.Data = restapi.MakeEntity(ptr.Interface(), x.identField.Name)
}

func (x *collection) readList(state *restapi.ResourceState) {
	slicePtr := reflect.New(reflect.SliceOf(x.model))
	if res := x.db.Find(slicePtr.Interface()); res.Error != nil {
		restapi.PanicResourceError(state, res.Error, "query the %s list", x.modelName)
	}

	slice := slicePtr.Elem()
	entities := make([]restapi.Entity, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		entities[i] = restapi.MakeEntity(slice.Index(i).Interface(), x.identField.Name)
	}
	state.Data = entities
}

// Create 实现 [restapi.ResourceCreator.Create] ：
// 基于表单数据新建对象，成功后重定向到新对象的 URL 。
func (x *collection) Create(state *restapi.ResourceState) {
	values, ok := x.formValues(state)
	if !ok {
		return
	}

	ptr := reflect.New(x.model)
	if !x.convert(state, values, ptr.Interface()) {
		return
	}

	if res := x.db.Create(ptr.Interface()); res.Error != nil {
		restapi.PanicResourceError(state, res.Error, "create %s", x.modelName)
	}

	pk := ptr.Elem().FieldByIndex(x.identField.Index).Interface()
	restapi.Redirect(state, x.resourceURL(fmt.Sprint(pk)))
}

// Update 实现 [restapi.ResourceUpdater.Update] ：
// 将表单数据覆盖到既有对象上，成功后重定向到对象的 URL 。表单里的主键字段被忽略。
func (x *collection) Update(state *restapi.ResourceState) {
	if state.Ident == "" {
		state.Error = restapi.CreateNotFoundError(state, "")
		return
	}

	ptr, ok := x.fetch(state)
	if !ok {
		return
	}

	values, ok := x.formValues(state)
	if !ok {
		return
	}
	delete(values, x.identField.Name)

	if !x.convert(state, values, ptr.Interface()) {
		return
	}

	if res := x.db.Save(ptr.Interface()); res.Error != nil {
		restapi.PanicResourceError(state, res.Error, "update %s %s", x.modelName, state.Ident)
	}
	restapi.Redirect(state, x.resourceURL(state.Ident))
}

// Delete 实现 [restapi.ResourceDeleter.Delete] ：删除对象，成功后重定向到集合的 URL 。
func (x *collection) Delete(state *restapi.ResourceState) {
	if state.Ident == "" {
		state.Error = restapi.CreateNotFoundError(state, "")
		return
	}

	ptr, ok := x.fetch(state)
	if !ok {
		return
	}

	res := x.db.Where(x.identColumn+" = ?", state.Ident).Delete(ptr.Interface())
	if res.Error != nil {
		restapi.PanicResourceError(state, res.Error, "delete %s %s", x.modelName, state.Ident)
	}
	restapi.Redirect(state, x.baseURL)
}

// fetch 读取 state.Ident 指定的对象。对象不存在时填写 404 错误并返回 ok=false 。
func (x *collection) fetch(state *restapi.ResourceState) (ptr reflect.Value, ok bool) {
	ptr = reflect.New(x.model)
	res := x.db.Where(x.identColumn+" = ?", state.Ident).First(ptr.Interface())
	if res.Error == nil {
		return ptr, true
	}

	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		state.Error = restapi.CreateNotFoundError(state, "")
		return reflect.Value{}, false
	}

	restapi.PanicResourceError(state, res.Error, "query %s %s", x.modelName, state.Ident)
	return reflect.Value{}, false
}

// formValues 将已解析的表单数据整理为 Go 字段名到值的表。
// 出现模型上没有的字段时，填写带校验信息的 400 错误并返回 ok=false 。
func (x *collection) formValues(state *restapi.ResourceState) (map[string]any, bool) {
	form := state.RawRequest.PostForm

	values := make(map[string]any, len(form))
	errs := make(restapi.ValidationErrors)
	for name, vs := range form {
		f, ok := x.fields[name]
		if !ok {
			errs.Add(name, "unknown field")
			continue
		}
		if len(vs) > 0 {
			values[f.Name] = vs[0]
		}
	}

	if len(errs) > 0 {
		state.Error = restapi.CreateValidationError(state, errs)
		return nil, false
	}
	return values, true
}

// convert 将表单值转换到模型对象上。转换失败按校验错误处理，填写 400 错误并返回 false 。
func (x *collection) convert(state *restapi.ResourceState, values map[string]any, ptr any) bool {
	if err := Conv.Convert(values, ptr); err != nil {
		state.Error = restapi.CreateValidationError(state, restapi.ValidationErrors{
			"__all__": {err.Error()},
		})
		return false
	}
	return true
}

// resourceURL 返回单个对象的 URL 。
func (x *collection) resourceURL(ident string) string {
	if ident == "" {
		return x.baseURL
	}
	return x.baseURL + "/" + ident
}
