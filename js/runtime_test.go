package js

import (
	"testing"

	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRuntimeBasic(t *testing.T) {
	r := NewRuntime()

	result, err := r.Execute("1 + 2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.ToInteger())
}

func TestRuntimeVariables(t *testing.T) {
	r := NewRuntime()

	_, err := r.Execute("var x = 42;")
	require.NoError(t, err)

	result, err := r.Execute("x")
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.ToInteger())
}

func TestRuntimeHasUniqueID(t *testing.T) {
	a, b := NewRuntime(), NewRuntime()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.ID(), a.Roots().Name())
}

func TestRuntimeWindowAliases(t *testing.T) {
	r := NewRuntime()

	result, err := r.Execute("window === this && self === window && globalThis === window")
	require.NoError(t, err)
	assert.True(t, result.ToBoolean())
}

func TestRuntimeClaimWindowOnce(t *testing.T) {
	rt := NewRuntime()
	assert.True(t, rt.ClaimWindow())
	assert.False(t, rt.ClaimWindow())
	assert.True(t, NewRuntime().ClaimWindow(), "claims are per runtime")
}

func TestRuntimeConsoleGoesToLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewRuntime(WithLogger(zap.New(core)))

	_, err := r.Execute(`console.log("hello", 1, null); console.warn("careful")`)
	require.NoError(t, err)

	entries := logs.FilterLoggerName("runtime.console").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "hello 1 null", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestRuntimeSyntaxErrorIsRecorded(t *testing.T) {
	r := NewRuntime()

	var seen []error
	r.SetOnError(func(err error) { seen = append(seen, err) })

	_, err := r.Execute("this is not valid")
	require.Error(t, err)
	assert.Len(t, r.Errors(), 1)
	assert.Len(t, seen, 1)

	r.ClearErrors()
	assert.Empty(t, r.Errors())
}

func TestRuntimeRecoversInvariantPanics(t *testing.T) {
	r := NewRuntime()
	r.VM().Set("boom", func(call goja.FunctionCall) goja.Value {
		bindings.Unimplemented("Test.boom")
		return goja.Undefined()
	})

	_, err := r.Execute("boom()")
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(bindings.KindUnimplemented))
	assert.Len(t, r.Errors(), 1)
}

func TestRuntimeExecuteScript(t *testing.T) {
	r := NewRuntime()

	require.NoError(t, r.ExecuteScript("var fromScript = 'ok';", "inline.js"))
	v, err := r.Execute("fromScript")
	require.NoError(t, err)
	assert.Equal(t, "ok", v.String())

	assert.Error(t, r.ExecuteScript("function (", "broken.js"))
}

func TestDefineGlobal(t *testing.T) {
	r := NewRuntime()

	require.NoError(t, r.DefineGlobal("fixed", r.VM().ToValue(7), PropEnumerate|PropReadOnly|PropPermanent))

	v, err := r.Execute("fixed = 9; fixed")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.ToInteger())

	v, err = r.Execute("Object.keys(window).indexOf('fixed') >= 0")
	require.NoError(t, err)
	assert.True(t, v.ToBoolean())

	// A permanent property cannot be redefined.
	assert.Error(t, r.DefineGlobal("fixed", r.VM().ToValue(1), 0))
}

func TestRuntimeRooting(t *testing.T) {
	r := NewRuntime()
	h := r.VM().NewObject()

	tok := r.AddRoot(h)
	assert.True(t, r.Roots().Contains(h))
	assert.Equal(t, 1, r.Roots().Len())

	tok.Release()
	assert.False(t, r.Roots().Contains(h))

	r.AddRoot(h)
	r.RemoveRoot(h)
	assert.Zero(t, r.Roots().Len())
}

func TestRuntimeClose(t *testing.T) {
	r := NewRuntime()
	require.NoError(t, r.Close())
	assert.True(t, r.Closed())
	require.NoError(t, r.Close())

	_, err := r.Execute("1")
	assert.ErrorIs(t, err, ErrRuntimeClosed)
	assert.ErrorIs(t, r.ExecuteScript("1", "x.js"), ErrRuntimeClosed)
}

func TestRuntimeCloseWithLeaks(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewRuntime(WithLogger(zap.New(core)))
	r.AddRoot(r.VM().NewObject())

	// The default policy only warns.
	require.NoError(t, r.Close())
	assert.Equal(t, 1, logs.FilterMessage("compartment destroyed with live roots").Len())

	strict := NewRuntime(WithLeakPolicy(LeakPolicyError))
	strict.AddRoot(strict.VM().NewObject())
	assert.ErrorIs(t, strict.Close(), bindings.ErrLeakedRoots)
}

func TestParseLeakPolicy(t *testing.T) {
	for in, want := range map[string]LeakPolicy{
		"":      LeakPolicyWarn,
		"warn":  LeakPolicyWarn,
		"error": LeakPolicyError,
	} {
		got, err := ParseLeakPolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLeakPolicy("panic")
	assert.Error(t, err)
}
