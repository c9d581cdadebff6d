package observability

import (
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

// Causes unwraps err into its chain, outermost first. Joined errors are
// walked depth-first.
func Causes(err error) []string {
	var out []string
	var walk func(error)
	walk = func(e error) {
		for e != nil {
			out = append(out, e.Error())
			if joined, ok := e.(interface{ Unwrap() []error }); ok {
				for _, inner := range joined.Unwrap() {
					walk(inner)
				}
				return
			}
			e = errors.Unwrap(e)
		}
	}
	walk(err)
	return out
}

// LogFailure logs err at error level with its full cause chain. A nil err
// logs nothing.
func LogFailure(logger *zap.Logger, msg string, err error) {
	if err == nil {
		return
	}
	logger.Error(msg,
		zap.Error(err),
		zap.Strings("causes", Causes(err)),
	)
}

// Recover logs a panic with its stack and stores it in *errp as an error.
// It must be deferred directly.
//
// Postcondition: when a panic was recovered *errp is non-nil.
func Recover(logger *zap.Logger, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	err = fmt.Errorf("recovered panic: %w", err)
	logger.Error("panic",
		zap.Error(err),
		zap.ByteString("stack", debug.Stack()),
	)
	if errp != nil {
		*errp = err
	}
}
