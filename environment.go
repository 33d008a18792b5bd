package lox

import "github.com/dolthub/swiss"

// globalCapacityHint sizes the root environment's swiss.Map; it's only a
// hint, the map grows past it fine.
const globalCapacityHint = 256

// Environment is a chain of name->value scopes with distance-indexed
// access. The root (global) environment is flat, long-lived and has no
// insertion-order requirement, so it is backed by a swiss.Map instead of a
// built-in Go map. Every local scope pushed by a block, call or closure is
// small and short-lived, so it stays on a plain map -- the resolver's
// GetAt/AssignAt contract only ever needs single-key access there, where
// swiss.Map's extra bookkeeping buys nothing.
type Environment struct {
	values map[string]interface{}
	global *swiss.Map[string, interface{}]

	// enclosing is the parent of this Environment. nil for the global scope;
	// every local scope encloses the scope it was pushed on top of.
	enclosing *Environment
}

// NewGlobalEnvironment creates the root environment, the one with no
// enclosing scope.
func NewGlobalEnvironment() *Environment {
	return &Environment{global: swiss.NewMap[string, interface{}](globalCapacityHint)}
}

// NewEnvironment creates a local scope enclosed by parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{values: make(map[string]interface{}), enclosing: parent}
}

// Define defines a new variable in the current innermost scope,
// unconditionally -- redefinition (shadowing included) always succeeds.
func (e *Environment) Define(name string, value interface{}) {
	if e.global != nil {
		e.global.Put(name, value)
		return
	}
	e.values[name] = value
}

// Get looks up a variable, starting in the current scope and walking
// outward through enclosing scopes until it reaches the global scope.
func (e *Environment) Get(name Token) (interface{}, error) {
	if e.global != nil {
		if val, ok := e.global.Get(name.Lexeme); ok {
			return val, nil
		}
	} else if val, ok := e.values[name.Lexeme]; ok {
		return val, nil
	}

	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}

	return nil, NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'")
}

// Assign updates an existing binding, recursing into enclosing scopes until
// it finds one. Unlike Define, it never creates a new binding.
func (e *Environment) Assign(name Token, value interface{}) error {
	if e.global != nil {
		if _, ok := e.global.Get(name.Lexeme); ok {
			e.global.Put(name.Lexeme, value)
			return nil
		}
	} else if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}

	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}

	return NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

// GetAt reads directly out of ancestor(distance) without falling through to
// further enclosing scopes -- it relies on the resolver's invariant that
// the name is in that exact scope.
func (e *Environment) GetAt(distance int, name string) interface{} {
	env := e.ancestor(distance)
	if env.global != nil {
		val, _ := env.global.Get(name)
		return val
	}
	return env.values[name]
}

// AssignAt writes directly into ancestor(distance), again without falling
// through.
func (e *Environment) AssignAt(distance int, name Token, value interface{}) {
	env := e.ancestor(distance)
	if env.global != nil {
		env.global.Put(name.Lexeme, value)
		return
	}
	env.values[name.Lexeme] = value
}

// ancestor walks a fixed number of hops up the enclosing chain.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}

	return env
}
