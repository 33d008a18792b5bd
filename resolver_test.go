package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSource(t *testing.T, source string) (*Interpreter, *StreamReporter) {
	t.Helper()
	reporter := NewStreamReporter(&bytes.Buffer{}, false)
	scanner := NewScanner(bytes.NewBufferString(source), reporter)
	tokens := scanner.ScanTokens()
	parser := NewParser(tokens, reporter)
	stmts, err := parser.Parse()
	require.NoError(t, err)

	interp := NewInterpreter(reporter)
	resolver := NewResolver(interp, reporter)
	if err := resolver.Resolve(stmts); err != nil {
		reporter.Report(err)
	}

	if !reporter.HadError() {
		interp.Interpret(stmts)
	}
	return interp, reporter
}

func TestResolver_ThisOutsideClassIsError(t *testing.T) {
	_, reporter := resolveSource(t, "print this;")
	assert.True(t, reporter.HadError())
}

func TestResolver_SuperOutsideClassIsError(t *testing.T) {
	_, reporter := resolveSource(t, "super.method();")
	assert.True(t, reporter.HadError())
}

func TestResolver_SuperWithoutSuperclassIsError(t *testing.T) {
	_, reporter := resolveSource(t, `
		class Cake {
			taste() { return super.taste(); }
		}
	`)
	assert.True(t, reporter.HadError())
}

func TestResolver_ReturnFromTopLevelIsError(t *testing.T) {
	_, reporter := resolveSource(t, "return 1;")
	assert.True(t, reporter.HadError())
}

func TestResolver_ReturnValueFromInitializerIsError(t *testing.T) {
	_, reporter := resolveSource(t, `
		class Thing {
			init() { return 1; }
		}
	`)
	assert.True(t, reporter.HadError())
}

func TestResolver_SelfInheritanceIsError(t *testing.T) {
	_, reporter := resolveSource(t, "class Oops < Oops {}")
	assert.True(t, reporter.HadError())
}

func TestResolver_RedeclarationInSameScopeIsError(t *testing.T) {
	_, reporter := resolveSource(t, `
		{
			var a = 1;
			var a = 2;
		}
	`)
	assert.True(t, reporter.HadError())
}

func TestResolver_ShadowingInInnerScopeIsAllowed(t *testing.T) {
	_, reporter := resolveSource(t, `
		var a = 1;
		{
			var a = 2;
		}
	`)
	assert.False(t, reporter.HadError())
}

func TestResolver_ReadOwnInitializerIsError(t *testing.T) {
	_, reporter := resolveSource(t, `
		{
			var a = a;
		}
	`)
	assert.True(t, reporter.HadError())
}

func TestResolver_SubclassMethodResolvesSuperAndThis(t *testing.T) {
	_, reporter := resolveSource(t, `
		class Breakfast {
			serve() { return this; }
		}
		class Brunch < Breakfast {
			serve() { return super.serve(); }
		}
	`)
	assert.False(t, reporter.HadError())
}
