package lox

// LoxInstance is a runtime object created by calling a LoxClass. Field
// access consults the instance's own fields first, then falls back to a
// method looked up on the class and bound to this instance.
type LoxInstance struct {
	class  *LoxClass
	fields map[string]interface{}
}

func NewLoxInstance(class *LoxClass) *LoxInstance {
	return &LoxInstance{class: class, fields: make(map[string]interface{})}
}

func (li *LoxInstance) String() string {
	return li.class.Name + " instance"
}

func (li *LoxInstance) Get(name Token) (interface{}, error) {
	if val, ok := li.fields[name.Lexeme]; ok {
		return val, nil
	}

	if method, ok := li.class.findMethod(name.Lexeme); ok {
		return method.Bind(li), nil
	}

	return nil, NewRuntimeError(name, "Undefined property '"+name.Lexeme+"'")
}

func (li *LoxInstance) Set(name Token, value interface{}) {
	li.fields[name.Lexeme] = value
}
