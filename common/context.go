package common

type RepoContextKey string

const (
	ContextLogger       RepoContextKey = "drepo.logger"
	ContextRequest      RepoContextKey = "drepo.request"
	ContextServerConfig RepoContextKey = "drepo.serverConfig"
)
