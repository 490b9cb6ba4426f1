package restapi

// NotFoundCrud 对全部 CRUD 过程给出默认实现：一律按资源不存在（ 404 ）处理。
// 自定义的资源只需实现其支持的环节，其余环节可内嵌此类型补齐。
type NotFoundCrud struct {
}

var _ interface {
	ResourceReader
	ResourceCreator
	ResourceUpdater
	ResourceDeleter
} = (*NotFoundCrud)(nil)

// Read 实现 ResourceReader.Read() ，总是按资源不存在处理。
func (NotFoundCrud) Read(state *ResourceState) {
	state.Error = CreateNotFoundError(state, "")
}

// Create 实现 ResourceCreator.Create() ，总是按资源不存在处理。
func (NotFoundCrud) Create(state *ResourceState) {
	state.Error = CreateNotFoundError(state, "")
}

// Update 实现 ResourceUpdater.Update() ，总是按资源不存在处理。
func (NotFoundCrud) Update(state *ResourceState) {
	state.Error = CreateNotFoundError(state, "")
}

// Delete 实现 ResourceDeleter.Delete() ，总是按资源不存在处理。
func (NotFoundCrud) Delete(state *ResourceState) {
	state.Error = CreateNotFoundError(state, "")
}
