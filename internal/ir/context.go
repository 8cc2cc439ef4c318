package ir

import (
	"github.com/retroenv/retrogolib/log"
)

// Context carries call scoped resources for one print run: the logger and
// scratch state that the printer may synthesize, e.g. a default policy
// derived from module properties. It is borrowed for the duration of the
// call and must not be mutated concurrently by the caller.
type Context struct {
	logger *log.Logger
}

// NewContext creates a context using the passed logger.
func NewContext(logger *log.Logger) *Context {
	return &Context{
		logger: logger,
	}
}

// Logger returns the logger of the context.
func (c *Context) Logger() *log.Logger {
	return c.logger
}
