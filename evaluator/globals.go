package eval

import (
	"time"

	env "github.com/havrydotdev/lx/environment"
)

func newClock() Callable {
	return NewNativeFunction("clock", 0, func(i *Interpreter, args []any) (any, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	})
}

func newGlobals() *env.Env {
	global := env.New()
	global.Define("clock", newClock())

	return global
}
