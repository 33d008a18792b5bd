package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_DefineAndGetGlobal(t *testing.T) {
	global := NewGlobalEnvironment()
	global.Define("a", 1.0)

	val, err := global.Get(NewToken(Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, val)
}

func TestEnvironment_GetUndefinedIsRuntimeError(t *testing.T) {
	global := NewGlobalEnvironment()

	_, err := global.Get(NewToken(Identifier, "nope", nil, 1))
	require.Error(t, err)
	var rerr *RuntimeError
	assert.ErrorAs(t, err, &rerr)
}

func TestEnvironment_AssignWalksEnclosingChain(t *testing.T) {
	global := NewGlobalEnvironment()
	global.Define("a", 1.0)

	local := NewEnvironment(global)
	err := local.Assign(NewToken(Identifier, "a", nil, 1), 2.0)
	require.NoError(t, err)

	val, err := global.Get(NewToken(Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, 2.0, val)
}

func TestEnvironment_AssignUndefinedIsRuntimeError(t *testing.T) {
	global := NewGlobalEnvironment()
	err := global.Assign(NewToken(Identifier, "nope", nil, 1), 1.0)
	require.Error(t, err)
}

func TestEnvironment_GetAtAndAssignAtDoNotFallThrough(t *testing.T) {
	global := NewGlobalEnvironment()
	global.Define("a", "outer")

	inner := NewEnvironment(global)
	inner.Define("a", "inner")

	assert.Equal(t, "inner", inner.GetAt(0, "a"))
	assert.Equal(t, "outer", inner.GetAt(1, "a"))

	inner.AssignAt(1, NewToken(Identifier, "a", nil, 1), "outer-changed")
	assert.Equal(t, "outer-changed", inner.GetAt(1, "a"))
	assert.Equal(t, "inner", inner.GetAt(0, "a"))
}

func TestEnvironment_ShadowingCreatesSeparateBinding(t *testing.T) {
	global := NewGlobalEnvironment()
	global.Define("a", 1.0)

	local := NewEnvironment(global)
	local.Define("a", 2.0)

	val, err := local.Get(NewToken(Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, 2.0, val)

	outerVal, err := global.Get(NewToken(Identifier, "a", nil, 1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, outerVal)
}
