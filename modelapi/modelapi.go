// Package modelapi 基于 gorm 提供资源集合（ Collection ）的 [restapi.ResourceHandler] 实现：
// 将数据库模型直接发布为 REST 资源，自动完成 CRUD 、表单校验和序列化。
package modelapi

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/cmstar/go-conv"
	"github.com/cmstar/go-restapi"
	"github.com/cmstar/go-restapi/logsetup"
	"gorm.io/gorm"
)

// Conv 是将表单数据转换到模型对象时使用的转换器。字段名称以大小写不敏感的方式匹配，
// 以便 question / Question 这样的表单字段都能对应到模型的字段上。
var Conv = conv.Conv{
	Conf: conv.Config{
		FieldMatcherCreator: &conv.SimpleMatcherCreator{
			Conf: conv.SimpleMatcherConfig{
				CaseInsensitive: true,
			},
		},
	},
}

// CollectionConfig 是 [NewCollection] 的参数。
type CollectionConfig struct {
	// DB 是访问数据库的 gorm 实例。必填。
	DB *gorm.DB

	// Model 是集合的模型，必须是 struct 或其指针，如 &Poll{} 。必填。
	// 模型通过 [restapi.MakeEntity] 转为输出的数据，字段名称转为小写下划线形式。
	Model any

	// BaseURL 是集合的 URL ，单个对象的 URL 是 BaseURL/ident 。必填。
	BaseURL string

	// PermittedMethods 是集合允许的 HTTP 方法。为空时仅允许 GET 。
	PermittedMethods []string

	// Responder 指定输出的数据格式。为 nil 时使用 [restapi.NewJsonResponder] 。
	Responder *restapi.SerializeResponder

	// IdentField 指定作为资源标识（主键）的字段名称（按 Go 字段名）。为空时使用 ID 。
	IdentField string

	// IdentPattern 指定 URL 上标识部分的格式。为 nil 时根据 IdentField 的类型推断：
	// 整数型字段使用 [restapi.IdentPatternNumber] ，字符串字段使用 [restapi.IdentPatternWord] 。
	IdentPattern *regexp.Regexp

	// Auth 指定认证过程，可为 nil 表示不做认证。
	Auth restapi.Authentication
}

// NewCollection 将一个数据库模型发布为 REST 资源集合，返回组装好的 ResourceHandler 。
// 配置非法时 panic 。
//
// 集合的行为：
//   - GET BaseURL 输出集合的全部对象； GET BaseURL/ident 输出单个对象，不存在时 404 。
//   - POST BaseURL 基于表单数据创建对象，成功后 302 重定向到新对象的 URL 。
//   - PUT BaseURL/ident 基于表单数据修改对象，成功后 302 重定向到对象的 URL 。
//   - DELETE BaseURL/ident 删除对象，成功后 302 重定向到集合的 URL 。
func NewCollection(cfg CollectionConfig) *restapi.ResourceHandlerWrapper {
	if cfg.DB == nil {
		restapi.PanicResourceError(nil, nil, "CollectionConfig.DB is required")
	}
	if cfg.Model == nil {
		restapi.PanicResourceError(nil, nil, "CollectionConfig.Model is required")
	}
	if cfg.BaseURL == "" {
		restapi.PanicResourceError(nil, nil, "CollectionConfig.BaseURL is required")
	}

	modelType := reflect.TypeOf(cfg.Model)
	for modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		restapi.PanicResourceError(nil, nil, "CollectionConfig.Model must be a struct, got %T", cfg.Model)
	}

	identName := cfg.IdentField
	if identName == "" {
		identName = "ID"
	}
	identField, ok := modelType.FieldByName(identName)
	if !ok {
		restapi.PanicResourceError(nil, nil, "model %s has no field %s", modelType.Name(), identName)
	}

	identPattern := cfg.IdentPattern
	if identPattern == nil {
		identPattern = identPatternOf(identField)
	}

	responder := cfg.Responder
	if responder == nil {
		responder = restapi.NewJsonResponder()
	}

	methods := cfg.PermittedMethods
	if len(methods) == 0 {
		methods = []string{"GET"}
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	col := &collection{
		db:         cfg.DB,
		model:      modelType,
		identField: identField,
		baseURL:    baseURL,
	}
	col.init()

	return &restapi.ResourceHandlerWrapper{
		ResourceReader:   col,
		ResourceCreator:  col,
		ResourceUpdater:  col,
		ResourceDeleter:  col,
		IdentResolver:    restapi.NewBasicIdentResolver(baseURL, identPattern),
		UserHostResolver: restapi.NewBasicUserHostResolver(),
		Responder:        responder,
		ResourceLogger:   collectionLogger,

		HandlerName: "Collection-" + modelType.Name(),
		Methods:     methods,
		Auth:        cfg.Auth,
	}
}

// identPatternOf 根据主键字段的类型推断 URL 标识的格式。
func identPatternOf(f reflect.StructField) *regexp.Regexp {
	switch f.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return restapi.IdentPatternNumber

	case reflect.String:
		return restapi.IdentPatternWord

	default:
		restapi.PanicResourceError(nil, nil,
			"cannot derive the ident pattern from the field type %v, set CollectionConfig.IdentPattern", f.Type)
		return nil
	}
}

// collectionLogger 是集合通用的日志过程：客户端地址、 URL 、 HTTP 方法、资源标识、
// 认证用户、表单数据和错误信息。
var collectionLogger = restapi.NewLogSetupPipeline(
	logsetup.IP,
	logsetup.URL,
	logsetup.Verb,
	logsetup.Ident,
	logsetup.User,
	restapi.ToLogSetup(logForm),
	logsetup.Files,
	logsetup.Error,
)

// logForm 输出已解析的表单数据。
func logForm(state *restapi.ResourceState) {
	form := state.RawRequest.PostForm
	if len(form) == 0 {
		return
	}
	state.LogMessage = append(state.LogMessage, "Form", form.Encode())
}
