package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, source string) ([]Token, *StreamReporter) {
	t.Helper()
	reporter := NewStreamReporter(&bytes.Buffer{}, false)
	scanner := NewScanner(bytes.NewBufferString(source), reporter)
	return scanner.ScanTokens(), reporter
}

func TestScanner_EmptySourceYieldsOnlyEOF(t *testing.T) {
	tokens, reporter := scanAll(t, "")

	require.Len(t, tokens, 1)
	assert.Equal(t, Eof, tokens[0].Type)
	assert.False(t, reporter.HadError())
}

func TestScanner_AlwaysEndsWithExactlyOneEOF(t *testing.T) {
	tokens, _ := scanAll(t, "var a = 1;\nprint a;")

	require.NotEmpty(t, tokens)
	assert.Equal(t, Eof, tokens[len(tokens)-1].Type)

	eofCount := 0
	for _, tok := range tokens {
		if tok.Type == Eof {
			eofCount++
		}
	}
	assert.Equal(t, 1, eofCount)
}

func TestScanner_Punctuation(t *testing.T) {
	tokens, reporter := scanAll(t, "(){},.-+;*!=<===>=<=/")

	wantTypes := []TokenType{
		LeftParen, RightParen, LeftBrace, RightBrace, Comma, Dot, Minus, Plus,
		Semicolon, Star, BangEqual, LessEqual, EqualEqual, GreaterEqual, LessEqual, Slash, Eof,
	}
	require.Len(t, tokens, len(wantTypes))
	for idx, want := range wantTypes {
		assert.Equal(t, want, tokens[idx].Type, "token %d", idx)
	}
	assert.False(t, reporter.HadError())
}

func TestScanner_StringLiteral(t *testing.T) {
	tokens, reporter := scanAll(t, `"hello world"`)

	require.Len(t, tokens, 2)
	assert.Equal(t, String, tokens[0].Type)
	assert.Equal(t, "hello world", tokens[0].Literal)
	assert.False(t, reporter.HadError())
}

func TestScanner_UnterminatedStringReportsDiagnostic(t *testing.T) {
	_, reporter := scanAll(t, `"hello`)

	assert.True(t, reporter.HadError())
}

func TestScanner_NumberLiteral(t *testing.T) {
	tokens, _ := scanAll(t, "123.45")

	require.Len(t, tokens, 2)
	assert.Equal(t, Number, tokens[0].Type)
	assert.Equal(t, 123.45, tokens[0].Literal)
}

func TestScanner_KeywordsVersusIdentifiers(t *testing.T) {
	tokens, _ := scanAll(t, "class fun orchid")

	require.Len(t, tokens, 4)
	assert.Equal(t, Class, tokens[0].Type)
	assert.Equal(t, Fun, tokens[1].Type)
	// "orchid" starts with "or" but must not be mistaken for the "or" keyword.
	assert.Equal(t, Identifier, tokens[2].Type)
}

func TestScanner_CommentsAreIgnored(t *testing.T) {
	tokens, _ := scanAll(t, "// this is a comment\nvar a = 1;")

	require.NotEmpty(t, tokens)
	assert.Equal(t, Var, tokens[0].Type)
}

func TestScanner_UnexpectedCharacterReportsDiagnostic(t *testing.T) {
	_, reporter := scanAll(t, "@")

	assert.True(t, reporter.HadError())
}

func TestScanner_LineTrackingAcrossNewlines(t *testing.T) {
	tokens, _ := scanAll(t, "var a = 1;\nvar b = 2;")

	var secondVar Token
	for _, tok := range tokens {
		if tok.Type == Var {
			secondVar = tok
		}
	}
	assert.Equal(t, 2, secondVar.Line)
}
