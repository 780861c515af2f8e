package rcontext

import (
	"context"
	"net/http"

	"github.com/openmapkit/deployment-repo/common"
	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/sirupsen/logrus"
)

func Initial() RequestContext {
	return RequestContext{
		Context: context.Background(),
		Log:     logrus.WithFields(logrus.Fields{"nocontext": true}),
		Config:  *config.Get(),
		Request: nil,
	}.populate()
}

// FromConfig builds a context outside of any request, for tools that carry
// their own configuration.
func FromConfig(ctx context.Context, cfg config.MainRepoConfig, log *logrus.Entry) RequestContext {
	return RequestContext{
		Context: ctx,
		Log:     log,
		Config:  cfg,
		Request: nil,
	}.populate()
}

type RequestContext struct {
	context.Context

	// These are also stored on the context object itself
	Log     *logrus.Entry         // drepo.logger
	Config  config.MainRepoConfig // drepo.serverConfig
	Request *http.Request         // drepo.request
}

func (c RequestContext) populate() RequestContext {
	c.Context = context.WithValue(c.Context, common.ContextLogger, c.Log)
	c.Context = context.WithValue(c.Context, common.ContextServerConfig, c.Config)
	c.Context = context.WithValue(c.Context, common.ContextRequest, c.Request)
	return c
}

func (c RequestContext) ReplaceLogger(log *logrus.Entry) RequestContext {
	ctx := context.WithValue(c.Context, common.ContextLogger, log)
	return RequestContext{
		Context: ctx,
		Log:     log,
		Config:  c.Config,
		Request: c.Request,
	}
}

func (c RequestContext) LogWithFields(fields logrus.Fields) RequestContext {
	return c.ReplaceLogger(c.Log.WithFields(fields))
}

// WithContext swaps the underlying context, keeping the logger, config and request.
func (c RequestContext) WithContext(ctx context.Context) RequestContext {
	return RequestContext{
		Context: ctx,
		Log:     c.Log,
		Config:  c.Config,
		Request: c.Request,
	}
}

// FromRequest builds the context handed to route handlers.
func FromRequest(r *http.Request, cfg config.MainRepoConfig, log *logrus.Entry) RequestContext {
	return RequestContext{
		Context: r.Context(),
		Log:     log,
		Config:  cfg,
		Request: r,
	}.populate()
}
