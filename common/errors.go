package common

import (
	"errors"
)

var ErrInvalidDeploymentName = errors.New("invalid deployment name")
var ErrPathOutsideRoot = errors.New("path escapes the public directory")
