package tools

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrInvalidArgumentList is returned when the arguments count do not match the expected count
	ErrInvalidArgumentList = errors.New("invalid arguments provided")
)

// GenerateAst regenerates expr.go and stmt.go from the grammar tables below.
// It's a development tool, not something the interpreter ever calls itself:
// run it after changing the grammar, then hand-review the diff, since it
// overwrites doc comments on the types it emits.
func GenerateAst(args []string) error {
	if len(args) != 1 {
		return ErrInvalidArgumentList
	}

	outputDir := args[0]

	err := defineAst(outputDir, "Expr", "Visitor", []string{
		"Assign   : Name Token, Value Expr",
		"Binary   : Left Expr, Operator Token, Right Expr",
		"Call     : Callee Expr, Paren Token, Arguments []Expr",
		"Get      : Object Expr, Name Token",
		"Grouping : Expression Expr",
		"Literal  : Value interface{}",
		"Logical  : Left Expr, Operator Token, Right Expr",
		"Set      : Object Expr, Name Token, Value Expr",
		"Super    : Keyword Token, Method Token",
		"This     : Keyword Token",
		"Unary    : Operator Token, Right Expr",
		"Variable : Name Token",
	})
	if err != nil {
		return err
	}

	return defineAst(outputDir, "Stmt", "StmtVisitor", []string{
		"Block      : Statements []Stmt",
		"ClassStmt  : Name Token, Superclass *Variable, Methods []*FunctionStmt",
		"Expression : Expression Expr",
		"FunctionStmt : Name Token, Params []Token, Body []Stmt",
		"IfStmt     : Condition Expr, ThenBranch Stmt, ElseBranch Stmt",
		"Print      : Expression Expr",
		"ReturnStmt : Keyword Token, Value Expr",
		"VarStmt    : Name Token, Initializer Expr",
		"WhileStmt  : Condition Expr, Body Stmt",
	})
}

// defineAst writes one AST file. baseName is "Expr" or "Stmt"; visitorName
// is the name of its visitor interface ("Visitor" for Expr, to match the
// book, "StmtVisitor" for Stmt since "Visitor" is already taken).
func defineAst(outputDir, baseName, visitorName string, astTypes []string) error {
	path := outputDir + "/" + strings.ToLower(baseName) + ".go"

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	returnType, suffix := "(interface{}, error)", "Expr"
	if baseName == "Stmt" {
		returnType, suffix = "error", "Stmt"
	}

	w := bufio.NewWriter(f)

	w.WriteString("package lox\n\n")
	w.WriteString("type " + baseName + " interface {\n")
	w.WriteString(fmt.Sprintf("    Accept(visitor %s) %s\n", visitorName, returnType))
	w.WriteString("}\n\n")

	defineVisitor(w, visitorName, suffix, returnType, astTypes)

	for _, astType := range astTypes {
		typeName := strings.Trim(strings.Split(astType, ":")[0], " ")
		fields := strings.Trim(strings.Split(astType, ":")[1], " ")
		defineType(w, visitorName, suffix, returnType, typeName, fields)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	return nil
}

func defineVisitor(w *bufio.Writer, visitorName, suffix, returnType string, astTypes []string) {
	w.WriteString("type " + visitorName + " interface {\n")
	for _, astType := range astTypes {
		typeName := strings.Trim(strings.Split(astType, ":")[0], " ")
		w.WriteString(fmt.Sprintf("    Visit%s%s(%s *%s) %s\n", typeName, suffix, strings.ToLower(suffix), typeName, returnType))
	}

	w.WriteString("}\n\n")
}

func defineType(w *bufio.Writer, visitorName, suffix, returnType, typeName, fieldList string) {
	w.WriteString("type " + typeName + " struct {\n")

	fields := strings.Split(fieldList, ", ")
	for _, field := range fields {
		w.WriteString("    " + field + "\n")
	}

	w.WriteString("}\n\n")

	// define the Accept method so it implements the base interface; the
	// first character of the type name is used as the receiver.
	typeAsParam := strings.ToLower(string([]rune(typeName)[0]))

	w.WriteString(fmt.Sprintf("func (%s *%s) Accept(visitor %s) %s {\n", typeAsParam, typeName, visitorName, returnType))
	w.WriteString(fmt.Sprintf("    return visitor.Visit%s%s(%s)\n", typeName, suffix, typeAsParam))
	w.WriteString("}\n\n")
}
