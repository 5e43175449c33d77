package interpreter

// environment is a single scope's variable storage, chained to the scope
// that encloses it.
//
// Lookup policy is split: the resolver hands the interpreter an exact
// distance for every local, so getAt and assignAt walk exactly that many
// links and never fall back to searching the chain. Globals have no
// distance and use the searching get and assign on the global environment
// directly.
type environment struct {
	values    map[string]Value
	enclosing *environment
}

// newEnvironment returns a fresh environment enclosed by the given one,
// which may be nil for the global environment.
func newEnvironment(enclosing *environment) *environment {
	return &environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// define binds a name in this environment, overwriting any previous
// binding of the same name.
func (e *environment) define(name string, value Value) {
	e.values[name] = value
}

// get looks name up in this environment and then its enclosing chain.
func (e *environment) get(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if value, exists := env.values[name]; exists {
			return value, true
		}
	}

	return nil, false
}

// assign sets an existing binding for name in this environment or its
// enclosing chain, reporting whether a binding was found.
//
// Unlike define, assign never creates a binding.
func (e *environment) assign(name string, value Value) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, exists := env.values[name]; exists {
			env.values[name] = value
			return true
		}
	}

	return false
}

// ancestor walks exactly distance links up the enclosing chain.
func (e *environment) ancestor(distance int) *environment {
	env := e

	for range distance {
		if env == nil {
			return nil
		}

		env = env.enclosing
	}

	return env
}

// getAt reads name from the environment exactly distance links up the
// chain. There is no fallback search, a miss at the recorded distance
// means the binding tables are out of sync with the program.
func (e *environment) getAt(distance int, name string) (Value, bool) {
	env := e.ancestor(distance)
	if env == nil {
		return nil, false
	}

	value, exists := env.values[name]

	return value, exists
}

// assignAt writes name in the environment exactly distance links up the
// chain, reporting whether the binding existed there.
func (e *environment) assignAt(distance int, name string, value Value) bool {
	env := e.ancestor(distance)
	if env == nil {
		return false
	}

	if _, exists := env.values[name]; !exists {
		return false
	}

	env.values[name] = value

	return true
}
