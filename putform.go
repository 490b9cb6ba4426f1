package restapi

import (
	"net/http"
	"strings"
)

// 解析请求的 body 部分时最大可用的内存，读取 multipart/form-data 型数据时，超过此字节数将使用临时文件存储。
const maxFormMemory = 10 * 1024 * 1024

// LoadForm 解析请求的表单数据（ application/x-www-form-urlencoded 或 multipart/form-data ），
// 填充 Request.PostForm ，文件部分填充 Request.MultipartForm 。
func LoadForm(r *http.Request) error {
	contentType := r.Header.Get(HttpHeaderContentType)
	if strings.HasPrefix(contentType, ContentTypeMultipartForm) {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

// LoadPutAndFiles 解析 PUT 请求的表单数据。
// PUT 和 POST 的 body 编码方式是一样的，仅请求方法不同，
// 这里临时将请求方法改为 POST ，统一复用 POST 的解析路径，解析完成后再改回来。
func LoadPutAndFiles(r *http.Request) error {
	if r.Method != http.MethodPut {
		return LoadForm(r)
	}

	r.Method = http.MethodPost
	defer func() { r.Method = http.MethodPut }()
	return LoadForm(r)
}
