package lox

// LoxClass is the runtime representation of a class declaration: its own
// methods plus an optional superclass to fall back to.
type LoxClass struct {
	Name       string
	superclass *LoxClass
	methods    map[string]*LoxFunction
}

func NewLoxClass(name string, superclass *LoxClass, methods map[string]*LoxFunction) *LoxClass {
	return &LoxClass{Name: name, superclass: superclass, methods: methods}
}

func (lc *LoxClass) String() string {
	return lc.Name
}

// Call constructs a new instance, running init (own or inherited) against
// it if one is defined.
func (lc *LoxClass) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	instance := NewLoxInstance(lc)

	if initializer, ok := lc.findMethod("init"); ok {
		_, err := initializer.Bind(instance).Call(interpreter, arguments)
		if err != nil {
			return nil, err
		}
	}

	return instance, nil
}

func (lc *LoxClass) Arity() int {
	if initializer, ok := lc.findMethod("init"); ok {
		return initializer.Arity()
	}

	return 0
}

// findMethod searches this class's own methods first, then recurses into
// the superclass chain.
func (lc *LoxClass) findMethod(name string) (*LoxFunction, bool) {
	if method, ok := lc.methods[name]; ok {
		return method, true
	}

	if lc.superclass != nil {
		return lc.superclass.findMethod(name)
	}

	return nil, false
}
