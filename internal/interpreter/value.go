package interpreter

import (
	"strconv"

	"go.followtheprocess.codes/lox/internal/syntax/ast"
)

// Value is any Lox runtime value.
//
// The concrete types are float64, string, bool, the untyped nil, and the
// object types [*Function], [*Class] and [*Instance].
type Value = any

// Callable is implemented by any [Value] that may appear as the callee of
// a call expression: functions, bound methods and classes.
type Callable interface {
	// Arity returns the number of arguments the callee requires.
	Arity() int

	// Call invokes the callee with the already evaluated arguments.
	Call(interp *Interpreter, args []Value) (Value, error)
}

// Function is a Lox function value: a declaration plus the environment it
// closed over.
//
// A bound method is a Function whose closure chain starts with an
// environment holding "this". The declaring unit's name and source travel
// with the function because its tokens are byte offsets into that source,
// in the REPL the unit currently running is not necessarily the one the
// function was declared in.
type Function struct {
	declaration *ast.FunctionLiteral
	closure     *environment
	name        string // Empty for anonymous functions
	unit        string // Name of the compile unit that declared the function
	src         []byte // That unit's source text
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

// Call executes the function body in a fresh environment enclosed by the
// function's closure, with the parameters bound to the arguments.
//
// Runtime errors raised inside the body must point into the unit that
// declared the function, so the interpreter's source is swapped for the
// duration of the call and restored on every exit path.
func (f *Function) Call(interp *Interpreter, args []Value) (Value, error) {
	env := newEnvironment(f.closure)

	for index, param := range f.declaration.Params {
		env.define(param.Name, args[index])
	}

	prevName, prevSrc := interp.name, interp.src
	interp.name, interp.src = f.unit, f.src

	defer func() {
		interp.name, interp.src = prevName, prevSrc
	}()

	ctrl, err := interp.executeBlock(f.declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if ctrl.kind == ctrlReturn {
		return ctrl.value, nil
	}

	// Fell off the end of the body
	return nil, nil
}

// bind returns a copy of the function whose closure chain starts with a
// fresh environment defining "this" as the given instance.
//
// Binding happens on every property access, the same method accessed twice
// yields two distinct values closed over the same instance.
func (f *Function) bind(instance *Instance) *Function {
	env := newEnvironment(f.closure)
	env.define("this", instance)

	return &Function{
		declaration: f.declaration,
		closure:     env,
		name:        f.name,
		unit:        f.unit,
		src:         f.src,
	}
}

// String implements [fmt.Stringer] for a [Function].
func (f *Function) String() string {
	if f.name == "" {
		return "<fn>"
	}

	return "<fn " + f.name + ">"
}

// Class is a Lox class value. Calling a class constructs an instance of it.
type Class struct {
	methods map[string]*Function
	name    string
}

// Arity returns 0, class calls take no arguments.
func (c *Class) Arity() int {
	return 0
}

// Call constructs a fresh, empty instance of the class.
func (c *Class) Call(interp *Interpreter, args []Value) (Value, error) {
	return &Instance{
		class:  c,
		fields: make(map[string]Value),
	}, nil
}

// findMethod looks a method up by name.
func (c *Class) findMethod(name string) (*Function, bool) {
	method, exists := c.methods[name]
	return method, exists
}

// String implements [fmt.Stringer] for a [Class].
func (c *Class) String() string {
	return c.name
}

// Instance is an instance of a Lox [Class], holding its own field storage.
type Instance struct {
	class  *Class
	fields map[string]Value
}

// get reads a property: a field if the instance has one of that name,
// shadowing any method, otherwise a method freshly bound to this instance.
func (i *Instance) get(name string) (Value, bool) {
	if field, exists := i.fields[name]; exists {
		return field, true
	}

	if method, exists := i.class.findMethod(name); exists {
		return method.bind(i), true
	}

	return nil, false
}

// set writes a field, creating it on first write.
func (i *Instance) set(name string, value Value) {
	i.fields[name] = value
}

// String implements [fmt.Stringer] for an [Instance].
func (i *Instance) String() string {
	return i.class.name + " instance"
}

// Stringify renders a [Value] the way the print statement shows it.
//
// Numbers that hold an integral value print without a decimal point, so
// '1 + 2' prints as "3", not "3.000000".
func Stringify(value Value) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case *Function:
		return v.String()
	case *Class:
		return v.String()
	case *Instance:
		return v.String()
	default:
		panic("unhandled value type") // Unreachable, the interpreter produces no other types
	}
}
