package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram scans, parses, resolves and interprets source, returning
// whatever was printed plus the reporter used throughout.
func runProgram(t *testing.T, source string) (string, *StreamReporter) {
	t.Helper()
	reporter := NewStreamReporter(&bytes.Buffer{}, false)

	scanner := NewScanner(bytes.NewBufferString(source), reporter)
	tokens := scanner.ScanTokens()

	parser := NewParser(tokens, reporter)
	stmts, err := parser.Parse()
	if err != nil {
		reporter.Report(err)
	}
	if reporter.HadError() {
		return "", reporter
	}

	interp := NewInterpreter(reporter)
	resolver := NewResolver(interp, reporter)
	if err := resolver.Resolve(stmts); err != nil {
		reporter.Report(err)
	}
	if reporter.HadError() {
		return "", reporter
	}

	interp.Interpret(stmts)
	return interp.stdout.String(), reporter
}

func TestInterpreter_ArithmeticAndPrint(t *testing.T) {
	out, reporter := runProgram(t, "print 1 + 2 * 3;")
	require.False(t, reporter.HadError())
	assert.Equal(t, "7\n", out)
}

func TestInterpreter_IntegralNumberPrintsWithoutTrailingZero(t *testing.T) {
	out, reporter := runProgram(t, "print 6.0 / 2.0;")
	require.False(t, reporter.HadRuntimeError())
	assert.Equal(t, "3\n", out)
}

func TestInterpreter_StringConcatenation(t *testing.T) {
	out, _ := runProgram(t, `print "a" + ("b" + "c");`)
	assert.Equal(t, "abc\n", out)

	out2, _ := runProgram(t, `print ("a" + "b") + "c";`)
	assert.Equal(t, out, out2)
}

func TestInterpreter_DoubleNegationPreservesTruthiness(t *testing.T) {
	out, _ := runProgram(t, "print !!nil;\nprint !!\"x\";\nprint !!0;")
	assert.Equal(t, "false\ntrue\ntrue\n", out)
}

func TestInterpreter_DivisionByZeroIsRuntimeError(t *testing.T) {
	_, reporter := runProgram(t, "print 1 / 0;")
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpreter_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, reporter := runProgram(t, "print nope;")
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpreter_ClosureCapturesByReference(t *testing.T) {
	out, reporter := runProgram(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}

		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpreter_ClassFieldsAndMethods(t *testing.T) {
	out, reporter := runProgram(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				return "hi " + this.name;
			}
		}

		var g = Greeter("lox");
		print g.greet();
	`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "hi lox\n", out)
}

func TestInterpreter_InitAlwaysReturnsInstanceEvenWithBareReturn(t *testing.T) {
	out, reporter := runProgram(t, `
		class Thing {
			init() {
				return;
			}
		}

		var t = Thing();
		print t;
	`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "Thing instance\n", out)
}

func TestInterpreter_SuperCallsParentMethod(t *testing.T) {
	out, reporter := runProgram(t, `
		class Pastry {
			cook() {
				return "plain";
			}
		}

		class Croissant < Pastry {
			cook() {
				return super.cook() + " croissant";
			}
		}

		print Croissant().cook();
	`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "plain croissant\n", out)
}

func TestInterpreter_InheritedMethodSeesSubclassThis(t *testing.T) {
	out, reporter := runProgram(t, `
		class A {
			whoAmI() {
				return this.name();
			}
			name() {
				return "A";
			}
		}

		class B < A {
			name() {
				return "B";
			}
		}

		print B().whoAmI();
	`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "B\n", out)
}

func TestInterpreter_CallingNonCallableIsRuntimeError(t *testing.T) {
	_, reporter := runProgram(t, `
		var x = 1;
		x();
	`)
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpreter_WrongArityIsRuntimeError(t *testing.T) {
	_, reporter := runProgram(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpreter_GetOnNonInstanceIsRuntimeError(t *testing.T) {
	_, reporter := runProgram(t, `
		var x = 1;
		print x.y;
	`)
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpreter_WhileLoop(t *testing.T) {
	out, reporter := runProgram(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpreter_ForLoop(t *testing.T) {
	out, reporter := runProgram(t, `
		for (var i = 0; i < 3; i = i + 1) {
			print i;
		}
	`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpreter_LogicalOperatorsShortCircuit(t *testing.T) {
	out, reporter := runProgram(t, `
		fun sideEffect() {
			print "called";
			return true;
		}

		print false and sideEffect();
		print true or sideEffect();
	`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "false\ntrue\n", out)
}

func TestInterpreter_NativeClockIsCallableWithNoArgs(t *testing.T) {
	out, reporter := runProgram(t, `
		var t = clock();
		print t > 0;
	`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "true\n", out)
}
