// SPDX-License-Identifier: MIT
package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matcalc/internal/config"
	"github.com/katalvlaran/matcalc/internal/service"
	"github.com/katalvlaran/matcalc/matrix"
)

// execute runs the root command with fresh flag state. Not parallel:
// cobra commands and their flags are package globals.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return out.String(), err
}

func TestOps_Plain(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"add", "1,2;3,4", "5,6;7,8"}, "6 8\n10 12\n"},
		{[]string{"subtract", "5,6;7,8", "1,2;3,4"}, "4 4\n4 4\n"},
		{[]string{"mul", "1,2;3,4", "5,6;7,8"}, "19 22\n43 50\n"},
		{[]string{"transpose", "1,2,3"}, "1\n2\n3\n"},
		{[]string{"identity", "2"}, "1 0\n0 1\n"},
		{[]string{"trace", "1,2;3,4"}, "5\n"},
		{[]string{"scale", "1,2", "--", "-2"}, "-2 -4\n"},
	}
	for _, tc := range cases {
		args := append([]string{"-o", "plain", "-p", "0"}, tc.args...)
		out, err := execute(t, args...)
		require.NoError(t, err, tc.args)
		assert.Equal(t, tc.want, out, tc.args)
	}
}

func TestDet_Precision(t *testing.T) {
	out, err := execute(t, "det", "1,2;3,4", "-o", "plain", "-p", "1")
	require.NoError(t, err)
	assert.Equal(t, "-2.0\n", out)
}

func TestInv_JSON(t *testing.T) {
	out, err := execute(t, "inverse", "2,1,1;1,2,1;1,1,2", "-o", "json")
	require.NoError(t, err)

	var v service.View
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	assert.Equal(t, service.OpInv, v.Op)
	require.NotNil(t, v.Determinant)
	assert.InDelta(t, 4.0, *v.Determinant, 1e-12)
	assert.InDelta(t, 0.75, v.Matrix[0][0], 1e-9)
	assert.InDelta(t, -0.25, v.Matrix[2][1], 1e-9)
}

func TestDet_YAML(t *testing.T) {
	out, err := execute(t, "det", "2,0;0,3", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "op: det")
	assert.Contains(t, out, "scalar: 6")
}

func TestMul_Table(t *testing.T) {
	out, err := execute(t, "mul", "1,2;3,4", "5,6;7,8", "-o", "table", "-p", "0")
	require.NoError(t, err)
	for _, want := range []string{"19", "22", "43", "50"} {
		assert.Contains(t, out, want)
	}
}

func TestInv_TableExtras(t *testing.T) {
	out, err := execute(t, "inv", "4,7;2,6")
	require.NoError(t, err)
	assert.Contains(t, out, "0.6000")
	assert.Contains(t, out, "-0.7000")
	assert.Contains(t, out, "det:")
	assert.Contains(t, out, "residual:")
}

func TestErrors(t *testing.T) {
	_, err := execute(t, "inv", "1,2;2,4")
	require.ErrorIs(t, err, matrix.ErrSingular)
	assert.Contains(t, err.Error(), "below 1e-10")

	_, err = execute(t, "add", "1,2", "1,2,3")
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = execute(t, "det", "1,2,3;4,5,6")
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = execute(t, "--max-dim", "1", "det", "1,2;3,4")
	require.ErrorIs(t, err, service.ErrTooLarge)

	_, err = execute(t, "-o", "xml", "det", "1")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, "identity", "three")
	require.ErrorContains(t, err, "not an integer")

	_, err = execute(t, "scale", "1,2", "x")
	require.ErrorContains(t, err, "not a number")

	_, err = execute(t, "det")
	require.Error(t, err)

	_, err = execute(t, "-o", "json", "det", "1e200,0;0,1e200")
	require.ErrorIs(t, err, service.ErrOverflow)
}

func TestFlagsOverrideEnvBeforeValidation(t *testing.T) {
	t.Setenv("MATCALC_OUTPUT_FORMAT", "bad")

	out, err := execute(t, "-o", "plain", "-p", "0", "trace", "1,2;3,4")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	_, err = execute(t, "trace", "1,2;3,4")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestExecute_PrintsError(t *testing.T) {
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})
	var errOut bytes.Buffer
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"det", "1,2"})

	require.Error(t, Execute())
	assert.True(t, strings.Contains(errOut.String(), "error:"))
	assert.Contains(t, errOut.String(), "not square")
}

func TestRootDescribesFloatingPoint(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "floating-point")
	assert.NotContains(t, rootCmd.Long, "exact")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "matcalc v"+Version)
}

func TestRender_UnknownFormat(t *testing.T) {
	v := 1.0
	err := render(&bytes.Buffer{}, &service.Result{Op: service.OpDet, Scalar: &v}, "xml", 2)
	require.ErrorIs(t, err, config.ErrInvalid)
}
