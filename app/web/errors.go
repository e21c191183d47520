package web

import "errors"

var ErrInvalidLogLevel = errors.New("invalid log level")
