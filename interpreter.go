package lox

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/arvendson/loxwalk/tools"
)

// returnSignal carries a return statement's value back up through the
// ordinary error channel so Call can unwind out of a function body without
// resorting to panic/recover. It must never reach a Reporter -- it carries
// no diagnostic, only a value -- and Call always intercepts it before it
// escapes past the function boundary.
type returnSignal struct {
	Value interface{}
}

func (r *returnSignal) Error() string {
	return "return outside of a function body"
}

// Interpreter walks a resolved AST and produces side effects (print); the
// values of expression statements are discarded. locals holds the
// lexical distance the resolver computed for every variable reference; a
// node absent from locals is assumed global.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[Expr]int

	reporter Reporter
	stdout   bytes.Buffer
}

func NewInterpreter(reporter Reporter) *Interpreter {
	globals := NewGlobalEnvironment()
	globals.Define("clock", Clock{})

	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[Expr]int),
		reporter:    reporter,
	}
}

// Interpret executes every top-level statement in order, stopping at the
// first runtime error -- Lox has no recover-and-continue story at the
// top level, so one bad statement ends the run.
func (i *Interpreter) Interpret(statements []Stmt) {
	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			i.reporter.Report(err)
			return
		}
	}
}

// resolve records the lexical distance the resolver computed for expr;
// called only by the Resolver.
func (i *Interpreter) resolve(expr Expr, depth int) {
	i.locals[expr] = depth
}

func (i *Interpreter) execute(stmt Stmt) error {
	return stmt.Accept(i)
}

// evaluate sends the expression back to the interpreter's visitor
// implementation.
func (i *Interpreter) evaluate(expr Expr) (interface{}, error) {
	return expr.Accept(i)
}

// VisitLiteralExpr converts the literal tree node created during parsing to
// the runtime value, which is simply the literal value pulled back from the
// Token created during scanning.
func (i *Interpreter) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	return expr.Value, nil
}

// VisitLogicalExpr evaluates "and"/"or" with short-circuiting: the right
// operand is only evaluated when the left doesn't already settle the
// result.
func (i *Interpreter) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	if expr.Operator.Type == Or {
		if i.isTruthy(left) {
			return left, nil
		}
	} else if !i.isTruthy(left) {
		return left, nil
	}

	return i.evaluate(expr.Right)
}

// VisitGroupingExpr evaluates the grouping expressions, the node that we get from
// using parenthesis around an expression. The grouping node has reference to the
// inner expression, so to evaluate it we recursively evaluate the inner subexpression.
func (i *Interpreter) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return i.evaluate(expr.Expression)
}

// VisitUnaryExpr evaluates the unary tree node. Unary expression have single subexpression that
// we need to evaluate first.
func (i *Interpreter) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	// this will evaluate recursively for expressions like !!true, the right operand will be
	// evaluated first before evaluating the operator.
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Bang:
		return !i.isTruthy(right), nil
	case Minus:
		if err := i.checkNumberOperand(expr.Operator, right); err != nil {
			return nil, err
		}

		return -right.(float64), nil
	}

	// unreachable.
	return nil, nil
}

// VisitVariableExpr resolves a bare identifier through the resolver's
// distance map, falling back to a global lookup when unresolved.
func (i *Interpreter) VisitVariableExpr(expr *Variable) (interface{}, error) {
	return i.lookUpVariable(expr.Name, expr)
}

// lookUpVariable consults the distance map the resolver built: a resolved
// local goes straight through GetAt (no fallthrough to enclosing scopes),
// while an unresolved name is assumed global and read directly off
// i.globals -- never through the enclosing chain, so a global reference
// deep inside nested scopes can't accidentally land on a same-named local
// along the way.
func (i *Interpreter) lookUpVariable(name Token, expr Expr) (interface{}, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}

	return i.globals.Get(name)
}

// VisitAssignExpr evaluates the right hand side expression to get the value and then stores it in the
// named variable. We use Assign method on the environment which only updates existing variable and is
// not allowed to create new variable. This method returns the assigned value because assignment is an
// expression and can be nested inside other expression.
// var a = 1;
// print a = 2; // "2"
func (i *Interpreter) VisitAssignExpr(expr *Assign) (interface{}, error) {
	val, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[expr]; ok {
		i.environment.AssignAt(distance, expr.Name, val)
	} else if err := i.globals.Assign(expr.Name, val); err != nil {
		return nil, err
	}

	return val, nil
}

func (i *Interpreter) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Greater:
		err := i.checkNumberOperandBoth(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}

		return left.(float64) > right.(float64), nil
	case GreaterEqual:
		err := i.checkNumberOperandBoth(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}

		return left.(float64) >= right.(float64), nil
	case Less:
		err := i.checkNumberOperandBoth(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}

		return left.(float64) < right.(float64), nil
	case LessEqual:
		err := i.checkNumberOperandBoth(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}

		return left.(float64) <= right.(float64), nil
	case BangEqual:
		return !i.isEqual(left, right), nil
	case EqualEqual:
		return i.isEqual(left, right), nil
	case Minus:
		err := i.checkNumberOperandBoth(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}

		return left.(float64) - right.(float64), nil
	case Plus:
		// plus (+) handles both string concatenation and arithmetic addition.
		if tools.IsFloat64(left) && tools.IsFloat64(right) {
			return left.(float64) + right.(float64), nil
		}

		if tools.IsString(left) && tools.IsString(right) {
			return left.(string) + right.(string), nil
		}

		return nil, NewRuntimeError(expr.Operator, "Operands must be two numbers or two strings.")
	case Slash:
		err := i.checkNumberOperandBoth(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}

		if right.(float64) == 0 {
			return nil, NewRuntimeError(expr.Operator, "Division by zero.")
		}

		return left.(float64) / right.(float64), nil
	case Star:
		err := i.checkNumberOperandBoth(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}

		return left.(float64) * right.(float64), nil
	}

	// unreachable
	return nil, nil
}

// VisitCallExpr evaluates the callee and every argument, then dispatches
// through LoxCallable -- the same interface covers user functions, classes
// (construction) and native functions, so the call site doesn't care which.
func (i *Interpreter) VisitCallExpr(expr *Call) (interface{}, error) {
	callee, err := i.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]interface{}, 0, len(expr.Arguments))
	for _, argument := range expr.Arguments {
		value, err := i.evaluate(argument)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, value)
	}

	callable, ok := callee.(LoxCallable)
	if !ok {
		return nil, NewRuntimeError(expr.Paren, "Can only call functions and classes.")
	}

	if len(arguments) != callable.Arity() {
		return nil, NewRuntimeError(expr.Paren, fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(arguments)))
	}

	return callable.Call(i, arguments)
}

func (i *Interpreter) VisitGetExpr(expr *Get) (interface{}, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	if instance, ok := object.(*LoxInstance); ok {
		return instance.Get(expr.Name)
	}

	return nil, NewRuntimeError(expr.Name, "Only instances have properties.")
}

func (i *Interpreter) VisitSetExpr(expr *Set) (interface{}, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*LoxInstance)
	if !ok {
		return nil, NewRuntimeError(expr.Name, "Only instances have fields.")
	}

	value, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(expr.Name, value)
	return value, nil
}

// VisitSuperExpr resolves "super.method". The resolver always pushes the
// "super" scope immediately outside the "this" scope for a subclass's
// methods, so "this" sits exactly one environment closer than "super" --
// that's why this looks up "this" at distance-1 instead of re-resolving it.
func (i *Interpreter) VisitSuperExpr(expr *Super) (interface{}, error) {
	distance := i.locals[expr]
	superclass, _ := i.environment.GetAt(distance, "super").(*LoxClass)
	instance, _ := i.environment.GetAt(distance-1, "this").(*LoxInstance)

	method, ok := superclass.findMethod(expr.Method.Lexeme)
	if !ok {
		return nil, NewRuntimeError(expr.Method, "Undefined property '"+expr.Method.Lexeme+"'.")
	}

	return method.Bind(instance), nil
}

func (i *Interpreter) VisitThisExpr(expr *This) (interface{}, error) {
	return i.lookUpVariable(expr.Keyword, expr)
}

func (i *Interpreter) VisitBlockStmt(stmt *Block) error {
	return i.executeBlock(stmt.Statements, NewEnvironment(i.environment))
}

func (i *Interpreter) executeBlock(statements []Stmt, env *Environment) error {
	previousEnv := i.environment

	i.environment = env
	for _, stmt := range statements {
		err := i.execute(stmt)
		if err != nil {
			i.environment = previousEnv
			return err
		}
	}

	i.environment = previousEnv
	return nil
}

// VisitClassStmt evaluates a class declaration. The superclass expression
// (if any) must evaluate to a LoxClass; its methods close over an
// environment defining "super", itself wrapping the environment every
// method ultimately binds "this" into (see LoxFunction.Bind). The name is
// defined before the class value exists so a method body can refer to its
// own class recursively.
func (i *Interpreter) VisitClassStmt(stmt *ClassStmt) error {
	var superclass *LoxClass
	if stmt.Superclass != nil {
		value, err := i.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}

		var ok bool
		superclass, ok = value.(*LoxClass)
		if !ok {
			return NewRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
	}

	i.environment.Define(stmt.Name.Lexeme, nil)

	if stmt.Superclass != nil {
		i.environment = NewEnvironment(i.environment)
		i.environment.Define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(stmt.Methods))
	for _, method := range stmt.Methods {
		function := NewLoxFunction(method, i.environment, method.Name.Lexeme == "init")
		methods[method.Name.Lexeme] = function
	}

	class := NewLoxClass(stmt.Name.Lexeme, superclass, methods)

	if stmt.Superclass != nil {
		i.environment = i.environment.enclosing
	}

	return i.environment.Assign(stmt.Name, class)
}

// VisitExpressionStmt interprets expression statements. As statements do not
// produce any value, we are discarding the expression generated from evaluating
// the statement's expression.
func (i *Interpreter) VisitExpressionStmt(stmt *Expression) error {
	_, err := i.evaluate(stmt.Expression)
	if err != nil {
		return err
	}

	return nil
}

func (i *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) error {
	function := NewLoxFunction(stmt, i.environment, false)
	i.environment.Define(stmt.Name.Lexeme, function)
	return nil
}

func (i *Interpreter) VisitIfStmt(stmt *IfStmt) error {
	condition, err := i.evaluate(stmt.Condition)
	if err != nil {
		return err
	}

	if i.isTruthy(condition) {
		err := i.execute(stmt.ThenBranch)
		if err != nil {
			return err
		}
	} else if stmt.ElseBranch != nil {
		err := i.execute(stmt.ElseBranch)
		if err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) VisitPrintStmt(stmt *Print) error {
	val, err := i.evaluate(stmt.Expression)
	if err != nil {
		return err
	}

	fmt.Fprintln(&i.stdout, i.stringify(val))
	return nil
}

// VisitReturnStmt evaluates the return value (nil if bare "return;") and
// hands it back up as a returnSignal, which LoxFunction.Call intercepts.
func (i *Interpreter) VisitReturnStmt(stmt *ReturnStmt) error {
	var value interface{}
	if stmt.Value != nil {
		v, err := i.evaluate(stmt.Value)
		if err != nil {
			return err
		}
		value = v
	}

	return &returnSignal{Value: value}
}

// VisitVarStmt interprets an variable declaration. If the variable has an
// initialization part, we first evaluate it, otherwise we store the default
// nil value for it. Thus it allows us to define an uninitialized variable.
// Like other dynamically typed languages, we just assign nil if the variable
// is not initialized.
func (i *Interpreter) VisitVarStmt(stmt *VarStmt) error {
	var val interface{}
	var err error
	if stmt.Initializer != nil {
		val, err = i.evaluate(stmt.Initializer)
		if err != nil {
			return err
		}
	}

	i.environment.Define(stmt.Name.Lexeme, val)
	return nil
}

func (i *Interpreter) VisitWhileStmt(stmt *WhileStmt) error {
	for {
		condition, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}

		if !i.isTruthy(condition) {
			return nil
		}

		if err := i.execute(stmt.Body); err != nil {
			return err
		}
	}
}

// isTruthy is a helper method that determines the truthfulness of a value. In lox the boolean value
// false and nil is considered falsy and everything else truthy.
func (i *Interpreter) isTruthy(val interface{}) bool {
	if val == nil {
		return false
	}

	switch val := val.(type) {
	case bool:
		return val
	}

	return true
}

func (i *Interpreter) isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	return a == b
}

// stringify renders a runtime value the way the print statement shows it:
// nil as "nil", a number in its shortest decimal form without an exponent
// (FormatFloat 'f' with -1 precision, so integral values carry no ".0"),
// every other value through its natural Go
// representation (which covers LoxFunction/LoxClass/LoxInstance's own
// String() methods).
func (i *Interpreter) stringify(val interface{}) string {
	if val == nil {
		return "nil"
	}

	if num, ok := val.(float64); ok {
		return strconv.FormatFloat(num, 'f', -1, 64)
	}

	return fmt.Sprint(val)
}

func (i *Interpreter) checkNumberOperand(operator Token, operand interface{}) error {
	if tools.IsFloat64(operand) {
		return nil
	}

	return NewRuntimeError(operator, "Operand must be a number.")
}

func (i *Interpreter) checkNumberOperandBoth(operator Token, left, right interface{}) error {
	if tools.IsFloat64(left) && tools.IsFloat64(right) {
		return nil
	}

	return NewRuntimeError(operator, "Operand must be a number.")
}
