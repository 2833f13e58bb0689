package runtime_test

import (
	"errors"
	"testing"

	"github.com/aretw0/marionette/internal/runtime"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariables_Value(t *testing.T) {
	v := runtime.NewVariables()
	v.Set("x", 7)

	got, err := v.Value("42")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = v.Value("-3")
	require.NoError(t, err)
	assert.Equal(t, -3, got)

	got, err = v.Value("x")
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	_, err = v.Value("y")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	v.Remove("x")
	v.Remove("x")
	assert.False(t, v.Contains("x"))
}

func TestVariables_NamesAndSnapshot(t *testing.T) {
	v := runtime.NewVariables()
	v.Set("b", 2)
	v.Set("a", 1)

	assert.Equal(t, []string{"a", "b"}, v.Names())

	snap := v.Snapshot()
	snap["a"] = 100
	got, _ := v.Get("a")
	assert.Equal(t, 1, got, "snapshot is a copy")
}

func TestVariables_Arithmetic(t *testing.T) {
	v := runtime.NewVariables()
	v.Set("ten", 10)
	v.Set("zero", 0)

	tests := []struct {
		left, op, right string
		want            int
		err             error
	}{
		{"ten", "+", "5", 15, nil},
		{"ten", "-", "15", -5, nil},
		{"ten", "*", "-2", -20, nil},
		{"ten", "/", "3", 3, nil},
		{"-7", "/", "2", -3, nil},
		{"ten", "%", "3", 1, nil},
		{"-7", "%", "2", -1, nil},
		{"ten", "/", "zero", 0, domain.ErrArithmetic},
		{"ten", "%", "0", 0, domain.ErrArithmetic},
		{"missing", "+", "1", 0, domain.ErrNotFound},
		{"1", "+", "missing", 0, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.left+tt.op+tt.right, func(t *testing.T) {
			got, err := v.Arithmetic(tt.left, tt.op, tt.right)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVariables_Logical(t *testing.T) {
	v := runtime.NewVariables()
	v.Set("x", 5)

	tests := []struct {
		left, op, right string
		want            bool
	}{
		{"x", "==", "5", true},
		{"x", "==", "6", false},
		{"x", "!=", "6", true},
		{"x", "!=", "5", false},
		{"x", "<", "6", true},
		{"x", "<", "5", false},
		{"x", ">", "4", true},
		{"x", ">", "5", false},
		{"x", "<=", "5", true},
		{"x", "<=", "4", false},
		{"x", ">=", "5", true},
		{"x", ">=", "6", false},
		{"x", "isset", "1", true},
		{"x", "isset", "0", false},
		{"y", "isset", "0", true},
		{"y", "isset", "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.left+tt.op+tt.right, func(t *testing.T) {
			got, err := v.Logical(tt.left, tt.op, tt.right)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVariables_UnknownOperatorHasNoCause(t *testing.T) {
	v := runtime.NewVariables()

	for _, eval := range []func() error{
		func() error { _, err := v.Arithmetic("1", "^", "2"); return err },
		func() error { _, err := v.Logical("1", "=~", "2"); return err },
		func() error { _, err := v.Evaluate("1", "<>", "2"); return err },
	} {
		err := eval()
		require.ErrorIs(t, err, domain.ErrSyntax)

		var syn *domain.SyntaxError
		require.True(t, errors.As(err, &syn))
		assert.Nil(t, syn.Cause)
	}
}

func TestVariables_Evaluate(t *testing.T) {
	v := runtime.NewVariables()

	got, err := v.Evaluate("2", "*", "21")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = v.Evaluate("2", "<", "21")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = v.Evaluate("2", ">", "21")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}
