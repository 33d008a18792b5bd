package lox

// LoxFunction is the runtime representation of a user-defined function or
// method. It implements LoxCallable so the interpreter can call it the same
// way it calls a class or a native function.
type LoxFunction struct {
	declaration   *FunctionStmt
	closure       *Environment
	isInitializer bool
}

func NewLoxFunction(declaration *FunctionStmt, closure *Environment, isInitializer bool) *LoxFunction {
	return &LoxFunction{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

// Call pushes a fresh environment over the function's captured closure,
// binds each parameter to its argument, then executes the body as a block.
// A return statement unwinds here via *returnSignal; falling off the end
// (or an explicit "return;") yields nil, except for an initializer, which
// always yields the bound instance.
func (lf *LoxFunction) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	env := NewEnvironment(lf.closure)
	for i, param := range lf.declaration.Params {
		env.Define(param.Lexeme, arguments[i])
	}

	err := interpreter.executeBlock(lf.declaration.Body, env)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			if lf.isInitializer {
				return lf.closure.GetAt(0, "this"), nil
			}
			return ret.Value, nil
		}

		return nil, err
	}

	if lf.isInitializer {
		return lf.closure.GetAt(0, "this"), nil
	}

	return nil, nil
}

func (lf *LoxFunction) Arity() int {
	return len(lf.declaration.Params)
}

func (lf *LoxFunction) String() string {
	return "<fn " + lf.declaration.Name.Lexeme + ">"
}

// Bind returns a new LoxFunction sharing the same declaration but whose
// closure is a fresh scope defining "this" on top of the original closure.
// Because it always wraps lf.closure (the closure captured at the method's
// declaration site, never a previously-bound one -- callers always bind
// from the class's method map, not from an already-bound copy), rebinding
// the same method to two different instances never cross-contaminates.
func (lf *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := NewEnvironment(lf.closure)
	env.Define("this", instance)
	return NewLoxFunction(lf.declaration, env, lf.isInitializer)
}
