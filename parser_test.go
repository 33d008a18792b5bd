package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) ([]Stmt, *StreamReporter) {
	t.Helper()
	reporter := NewStreamReporter(&bytes.Buffer{}, false)
	scanner := NewScanner(bytes.NewBufferString(source), reporter)
	tokens := scanner.ScanTokens()
	parser := NewParser(tokens, reporter)
	stmts, err := parser.Parse()
	if err != nil {
		reporter.Report(err)
	}
	return stmts, reporter
}

func TestParser_ArithmeticPrecedence(t *testing.T) {
	stmts, reporter := parseSource(t, "1 + 2 * 3;")
	require.False(t, reporter.HadError())
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*Expression)
	require.True(t, ok)

	binary, ok := exprStmt.Expression.(*Binary)
	require.True(t, ok)
	assert.Equal(t, Plus, binary.Operator.Type)

	right, ok := binary.Right.(*Binary)
	require.True(t, ok)
	assert.Equal(t, Star, right.Operator.Type)
}

func TestParser_AssignmentTargetMustBeVariableOrGet(t *testing.T) {
	_, reporter := parseSource(t, "1 = 2;")
	assert.True(t, reporter.HadError())
}

func TestParser_ValidAssignmentTarget(t *testing.T) {
	stmts, reporter := parseSource(t, "var a; a = 2;")
	require.False(t, reporter.HadError())
	require.Len(t, stmts, 2)

	exprStmt := stmts[1].(*Expression)
	assign, ok := exprStmt.Expression.(*Assign)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Name.Lexeme)
}

func TestParser_ClassWithSuperclass(t *testing.T) {
	stmts, reporter := parseSource(t, "class Base {}\nclass Derived < Base {}")
	require.False(t, reporter.HadError())
	require.Len(t, stmts, 2)

	derived, ok := stmts[1].(*ClassStmt)
	require.True(t, ok)
	require.NotNil(t, derived.Superclass)
	assert.Equal(t, "Base", derived.Superclass.Name.Lexeme)
}

func TestParser_ForLoopDesugarsToWhile(t *testing.T) {
	stmts, reporter := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, reporter.HadError())
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)

	_, isWhile := block.Statements[1].(*WhileStmt)
	assert.True(t, isWhile)
}

func TestParser_MissingSemicolonIsError(t *testing.T) {
	_, reporter := parseSource(t, "var a = 1")
	assert.True(t, reporter.HadError())
}

func TestParser_UnclosedParenIsError(t *testing.T) {
	_, reporter := parseSource(t, "print (1 + 2;")
	assert.True(t, reporter.HadError())
}

func TestParser_SynchronizeRecoversAfterError(t *testing.T) {
	stmts, reporter := parseSource(t, "var a = ;\nvar b = 2;")
	assert.True(t, reporter.HadError())
	// the parser should recover and still parse the second, valid statement
	found := false
	for _, s := range stmts {
		if v, ok := s.(*VarStmt); ok && v.Name.Lexeme == "b" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParser_255ParametersAccepted(t *testing.T) {
	source := "fun f("
	for i := 0; i < 255; i++ {
		if i > 0 {
			source += ", "
		}
		source += "a" + itoa(i)
	}
	source += ") {}"

	_, reporter := parseSource(t, source)
	assert.False(t, reporter.HadError())
}

func TestParser_256ParametersIsError(t *testing.T) {
	source := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			source += ", "
		}
		source += "a" + itoa(i)
	}
	source += ") {}"

	_, reporter := parseSource(t, source)
	assert.True(t, reporter.HadError())
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}
