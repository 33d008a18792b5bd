package lox

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
)

// Runtime owns one Interpreter across its whole lifetime -- global
// variables and top-level function/class declarations persist between REPL
// lines, exactly like a single script being fed in incrementally.
type Runtime struct {
	interpreter *Interpreter
	reporter    Reporter
	log         *logrus.Logger

	// Stdout is where print statement output is written; defaults to
	// os.Stdout, overridable so tests can capture it.
	Stdout io.Writer
}

func NewRuntime(reporter Reporter, log *logrus.Logger) *Runtime {
	return &Runtime{
		interpreter: NewInterpreter(reporter),
		reporter:    reporter,
		log:         log,
		Stdout:      os.Stdout,
	}
}

// RunFile loads the script at path and runs it once. It returns an error
// only for an I/O failure reading the file -- parse/resolve/runtime
// diagnostics are reported through the Reporter, and the caller inspects
// reporter.HadError()/HadRuntimeError() for the process exit code (spec
// §6: 1 on any diagnostic from running a script, 0 otherwise).
func (rt *Runtime) RunFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	rt.log.WithField("path", path).Debug("running script")
	rt.run(bytes.NewBuffer(source))
	return nil
}

// RunPrompt drives an interactive REPL over readline: one line of source
// per iteration, diagnostics reported but never fatal, Ctrl-D exits cleanly
// and Ctrl-C discards the current line. Static errors on one line do not poison later lines -- the
// Reporter is reset between iterations.
func (rt *Runtime) RunPrompt() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "lox> ",
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(rt.Stdout)
			return nil
		}
		if err != nil {
			return err
		}

		rt.reporter.Reset()
		rt.run(bytes.NewBufferString(line))
	}
}

func (rt *Runtime) run(source *bytes.Buffer) {
	scanner := NewScanner(source, rt.reporter)
	tokens := scanner.ScanTokens()

	// Parser and Resolver report every diagnostic through rt.reporter as
	// they find it (so synchronize/continue can surface more than one);
	// the error they return is only an aggregate signal, already reported.
	parser := NewParser(tokens, rt.reporter)
	statements, _ := parser.Parse()

	if rt.reporter.HadError() {
		return
	}

	resolver := NewResolver(rt.interpreter, rt.reporter)
	resolver.Resolve(statements)

	if rt.reporter.HadError() {
		return
	}

	rt.interpreter.Interpret(statements)
	rt.Stdout.Write(rt.interpreter.stdout.Bytes())
	rt.interpreter.stdout.Reset()
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return home + "/.loxwalk_history"
}
