package restapi

const (
	// ContentTypeNone 未指定类型。
	ContentTypeNone = ""

	// ContentTypeJson 对应 Content-Type: application/json 的值。
	ContentTypeJson = "application/json"

	// ContentTypeXml 对应 Content-Type: application/xml 的值。
	ContentTypeXml = "application/xml"

	// ContentTypePlainText 对应 Content-Type: text/plain 的值。
	ContentTypePlainText = "text/plain"

	// ContentTypeForm 对应 Content-Type: application/x-www-form-urlencoded 的值。
	ContentTypeForm = "application/x-www-form-urlencoded"

	// ContentTypeMultipartForm 对应 Content-Type: multipart/form-data 的值。
	ContentTypeMultipartForm = "multipart/form-data"
)

const (
	// HttpHeaderContentType 对应 HTTP 头中的 Content-Type 字段。
	HttpHeaderContentType = "Content-Type"

	// HttpHeaderAllow 对应 HTTP 头中的 Allow 字段，在 405 回执中列出允许的方法。
	HttpHeaderAllow = "Allow"

	// HttpHeaderLocation 对应 HTTP 头中的 Location 字段，用于重定向。
	HttpHeaderLocation = "Location"

	// HttpHeaderAuthorization 对应 HTTP 头中的 Authorization 字段。
	HttpHeaderAuthorization = "Authorization"

	// HttpHeaderWWWAuthenticate 对应 HTTP 头中的 WWW-Authenticate 字段，用于认证质询。
	HttpHeaderWWWAuthenticate = "WWW-Authenticate"
)
