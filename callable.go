package lox

// LoxCallable is implemented by every Lox value that can be called: user
// functions, classes (construction) and native functions like clock.
type LoxCallable interface {
	// Call evaluates the callable against the given, already-evaluated
	// arguments.
	Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error)

	// Arity is the number of arguments the callable expects.
	Arity() int
}
