package lox

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
)

// Diagnostic is the single error kind the interpreter ever produces: a line,
// an optional "where" qualifier, and a message. Its Error() string is the
// exact wire format the Reporter writes to stderr:
//
//	[line N] Error<where>: <message>
type Diagnostic struct {
	Line    int
	Where   string
	Message string
}

func NewDiagnostic(line int, where, message string) *Diagnostic {
	return &Diagnostic{Line: line, Where: where, Message: message}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// ParseError is a Diagnostic raised while parsing; kept as a distinct type
// (rather than a bare *Diagnostic) so a Reporter can separate "the script
// never ran" failures from runtime ones.
type ParseError struct {
	*Diagnostic
}

func NewParseError(token Token, message string) *ParseError {
	return &ParseError{Diagnostic: tokenDiagnostic(token, message)}
}

// RuntimeError is a Diagnostic raised while evaluating a resolved,
// syntactically valid program -- type errors, undefined names, division by
// zero, arity mismatches.
type RuntimeError struct {
	*Diagnostic
	Token Token
}

func NewRuntimeError(token Token, message string) *RuntimeError {
	return &RuntimeError{Diagnostic: tokenDiagnostic(token, message), Token: token}
}

func tokenDiagnostic(token Token, message string) *Diagnostic {
	where := ""
	if token.Type == Eof {
		where = " at end"
	} else if token.Lexeme != "" {
		where = " '" + token.Lexeme + "'"
	}
	return NewDiagnostic(token.Line, where, message)
}

// Reporter separates "a phase found a problem" from "how it reaches the
// user" -- the REPL, the script runner and tests each want a different sink
// (colorized terminal, plain pipe, an in-memory buffer to assert against).
type Reporter interface {
	Report(err error)
	Reset()
	HadError() bool
	HadRuntimeError() bool
}

// StreamReporter writes every diagnostic, one per line, to an io.Writer
// (ordinarily os.Stderr). When Colorize is set and fatih/color's global
// NoColor switch is off, the whole line is wrapped in red -- never splitting
// the "[line N] Error<where>: msg" substring. The writer itself is not
// inspected.
type StreamReporter struct {
	writer        io.Writer
	Colorize      bool
	hadErr        bool
	hadRuntimeErr bool
}

func NewStreamReporter(writer io.Writer, colorize bool) *StreamReporter {
	return &StreamReporter{writer: writer, Colorize: colorize}
}

func (r *StreamReporter) Report(err error) {
	if merr, ok := err.(*multierror.Error); ok {
		for _, inner := range merr.Errors {
			r.Report(inner)
		}
		return
	}

	line := err.Error()
	if r.Colorize && !color.NoColor {
		line = color.RedString(line)
	}
	fmt.Fprintln(r.writer, line)

	if _, ok := err.(*RuntimeError); ok {
		r.hadRuntimeErr = true
		return
	}
	r.hadErr = true
}

func (r *StreamReporter) Reset() {
	r.hadErr = false
	r.hadRuntimeErr = false
}

func (r *StreamReporter) HadError() bool        { return r.hadErr }
func (r *StreamReporter) HadRuntimeError() bool { return r.hadRuntimeErr }

// appendErr folds err into the running *multierror.Error, used by the
// Parser to collect every declaration-aborting diagnostic from a
// synchronized pass instead of stopping at the first one.
func appendErr(into error, err error) error {
	return multierror.Append(into, err)
}
