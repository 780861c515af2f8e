package api

import (
	"errors"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/openmapkit/deployment-repo/common"
	"github.com/openmapkit/deployment-repo/common/rcontext"
)

// ErrorFor converts an error from the controllers into a response. Anything
// that is not a well known condition is logged and reported.
func ErrorFor(rctx rcontext.RequestContext, err error) *ErrorResponse {
	if errors.Is(err, os.ErrNotExist) {
		return NotFoundError()
	}
	if errors.Is(err, common.ErrInvalidDeploymentName) || errors.Is(err, common.ErrPathOutsideRoot) {
		return BadRequest(err.Error())
	}

	rctx.Log.Error(err)
	sentry.CaptureException(err)
	return InternalServerError("Unexpected error reading deployments")
}
