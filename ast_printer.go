package lox

import (
	"fmt"
	"strings"
)

// AstPrinter renders an expression tree as a fully parenthesized
// Lisp-like string, e.g. "(* (- 123) (group 45.67))". It exists purely as
// a debugging/testing aid -- nothing in the evaluation pipeline depends on
// it -- so tests can assert on parser output without depending on the
// interpreter's runtime values.
type AstPrinter struct{}

func (ap *AstPrinter) Print(expr Expr) (string, error) {
	value, err := expr.Accept(ap)
	if err != nil {
		return "", err
	}

	return value.(string), nil
}

func (ap *AstPrinter) VisitAssignExpr(expr *Assign) (interface{}, error) {
	return ap.parenthesize("= "+expr.Name.Lexeme, expr.Value)
}

func (ap *AstPrinter) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	return ap.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
}

func (ap *AstPrinter) VisitCallExpr(expr *Call) (interface{}, error) {
	return ap.parenthesize("call", append([]Expr{expr.Callee}, expr.Arguments...)...)
}

func (ap *AstPrinter) VisitGetExpr(expr *Get) (interface{}, error) {
	return ap.parenthesize("get "+expr.Name.Lexeme, expr.Object)
}

func (ap *AstPrinter) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return ap.parenthesize("group", expr.Expression)
}

func (ap *AstPrinter) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	if expr.Value == nil {
		return "nil", nil
	}

	return fmt.Sprintf("%v", expr.Value), nil
}

func (ap *AstPrinter) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	return ap.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
}

func (ap *AstPrinter) VisitSetExpr(expr *Set) (interface{}, error) {
	return ap.parenthesize("set "+expr.Name.Lexeme, expr.Object, expr.Value)
}

func (ap *AstPrinter) VisitSuperExpr(expr *Super) (interface{}, error) {
	return "(super " + expr.Method.Lexeme + ")", nil
}

func (ap *AstPrinter) VisitThisExpr(expr *This) (interface{}, error) {
	return "this", nil
}

func (ap *AstPrinter) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	return ap.parenthesize(expr.Operator.Lexeme, expr.Right)
}

func (ap *AstPrinter) VisitVariableExpr(expr *Variable) (interface{}, error) {
	return expr.Name.Lexeme, nil
}

func (ap *AstPrinter) parenthesize(name string, exprs ...Expr) (string, error) {
	s := strings.Builder{}
	s.WriteString("(" + name)

	for _, expr := range exprs {
		s.WriteString(" ")
		value, err := expr.Accept(ap)
		if err != nil {
			return "", err
		}
		s.WriteString(value.(string))
	}

	s.WriteString(")")
	return s.String(), nil
}
