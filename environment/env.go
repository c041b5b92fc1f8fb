// Package env implements the scope chain. An Env is shared by reference:
// every closure created while it is active keeps it alive and sees the
// writes of every other holder.
package env

type Env struct {
	outer *Env

	values map[string]any
}

// New returns a root scope.
func New() *Env {
	return &Env{values: make(map[string]any)}
}

func NewChild(outer *Env) *Env {
	return &Env{values: make(map[string]any), outer: outer}
}

func (e *Env) Outer() *Env {
	return e.outer
}

// Define binds name in this scope, overwriting an existing binding of the
// same name in this scope. Outer bindings are shadowed, not touched.
func (e *Env) Define(name string, value any) {
	e.values[name] = value
}

// Assign updates the nearest scope that already binds name. It never
// creates a binding and reports false if no scope has one.
func (e *Env) Assign(name string, value any) bool {
	for scope := e; scope != nil; scope = scope.outer {
		if _, ok := scope.values[name]; ok {
			scope.values[name] = value
			return true
		}
	}

	return false
}

func (e *Env) Get(name string) (any, bool) {
	for scope := e; scope != nil; scope = scope.outer {
		if val, ok := scope.values[name]; ok {
			return val, true
		}
	}

	return nil, false
}

// Depth is the number of enclosing scopes, 0 for a root.
func (e *Env) Depth() int {
	depth := 0
	for scope := e.outer; scope != nil; scope = scope.outer {
		depth++
	}

	return depth
}
