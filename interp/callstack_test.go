package interp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCallStack(t *testing.T) {
	var stack CallStack
	require.Nil(t, stack.Peek())
	require.Nil(t, stack.Pop())

	prog := NewActivationRecord("Main", ARProgram, 1)
	prog.Set("x", Int(1))
	prog.Set("a", Real(2.5))
	stack.Push(prog)

	alpha := NewActivationRecord("Alpha", ARProcedure, 2)
	alpha.AccessLink = prog
	alpha.Declare("y")
	stack.Push(alpha)

	require.Equal(t, 2, stack.Len())
	require.Same(t, alpha, stack.Peek())

	require.Equal(t, "CALL STACK\n2: PROCEDURE Alpha\n1: PROGRAM Main\n   a     : 2.5\n   x     : 1\n", stack.String())

	require.Same(t, alpha, alpha.resolve("y"))
	require.Same(t, prog, alpha.resolve("x"))
	require.Nil(t, alpha.resolve("z"))

	_, ok := alpha.Get("y")
	require.False(t, ok, "declared variables have no value")

	require.Same(t, alpha, stack.Pop())
	require.Same(t, prog, stack.Pop())
	require.Equal(t, 0, stack.Len())
}

func TestActivationRecordMembers(t *testing.T) {
	ar := NewActivationRecord("Main", ARProgram, 1)
	ar.Set("b", Int(2))
	ar.Set("a", Int(1))

	members := ar.Members()
	members["c"] = Int(3)

	require.Equal(t, 2, ar.Len())
	require.Equal(t, []string{"a", "b"}, ar.Names())
}

func TestNumber(t *testing.T) {
	testData := []struct {
		n        Number
		str      string
		real     bool
		asInt    int64
		asFloat  float64
		asNative interface{}
	}{
		{Int(42), "42", false, 42, 42, int64(42)},
		{Int(-3), "-3", false, -3, -3, int64(-3)},
		{Real(3.5), "3.5", true, 3, 3.5, 3.5},
		{Real(-2.75), "-2.75", true, -2, -2.75, -2.75},
		{Real(2), "2", true, 2, 2, 2.0},
	}

	for _, tt := range testData {
		t.Run(tt.str, func(t *testing.T) {
			require.Equal(t, tt.str, tt.n.String())
			require.Equal(t, tt.real, tt.n.IsReal())
			require.Equal(t, tt.asInt, tt.n.Int64())
			require.Equal(t, tt.asFloat, tt.n.Float64())
			require.Equal(t, tt.asNative, tt.n.Interface())
		})
	}
}

func TestNumberYAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Number{
		"a": Int(2),
		"y": Real(5.5),
	})
	require.NoError(t, err)
	require.Equal(t, "a: 2\ny: 5.5\n", string(out))
}
