package restapi

/*
当前文件提供各个环节接口的函数形式的适配，便于用单个函数实现对应的接口。
*/

// ResourceReaderFunc 是 [ResourceReader.Read] 的函数签名，实现 [ResourceReader] 。
type ResourceReaderFunc func(state *ResourceState)

// Read 实现 ResourceReader.Read() 。
func (f ResourceReaderFunc) Read(state *ResourceState) {
	f(state)
}

// ResourceCreatorFunc 是 [ResourceCreator.Create] 的函数签名，实现 [ResourceCreator] 。
type ResourceCreatorFunc func(state *ResourceState)

// Create 实现 ResourceCreator.Create() 。
func (f ResourceCreatorFunc) Create(state *ResourceState) {
	f(state)
}

// ResourceUpdaterFunc 是 [ResourceUpdater.Update] 的函数签名，实现 [ResourceUpdater] 。
type ResourceUpdaterFunc func(state *ResourceState)

// Update 实现 ResourceUpdater.Update() 。
func (f ResourceUpdaterFunc) Update(state *ResourceState) {
	f(state)
}

// ResourceDeleterFunc 是 [ResourceDeleter.Delete] 的函数签名，实现 [ResourceDeleter] 。
type ResourceDeleterFunc func(state *ResourceState)

// Delete 实现 ResourceDeleter.Delete() 。
func (f ResourceDeleterFunc) Delete(state *ResourceState) {
	f(state)
}

// IdentResolverFunc 是 [IdentResolver.FillIdent] 的函数签名，实现 [IdentResolver] 。
type IdentResolverFunc func(state *ResourceState)

// FillIdent 实现 IdentResolver.FillIdent() 。
func (f IdentResolverFunc) FillIdent(state *ResourceState) {
	f(state)
}

// UserHostResolverFunc 是 [UserHostResolver.FillUserHost] 的函数签名，实现 [UserHostResolver] 。
type UserHostResolverFunc func(state *ResourceState)

// FillUserHost 实现 UserHostResolver.FillUserHost() 。
func (f UserHostResolverFunc) FillUserHost(state *ResourceState) {
	f(state)
}

// ResourceLoggerFunc 是 [ResourceLogger.Log] 的函数签名，实现 [ResourceLogger] 。
type ResourceLoggerFunc func(state *ResourceState)

// Log 实现 ResourceLogger.Log() 。
func (f ResourceLoggerFunc) Log(state *ResourceState) {
	f(state)
}
