// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/matcalc/internal/service"
	"github.com/katalvlaran/matcalc/matrix"
)

// opDef describes one calculator subcommand.
type opDef struct {
	op      service.Op
	use     string
	short   string
	aliases []string
	args    int
	parse   func(args []string) (service.Literals, error)
}

var opDefs = []opDef{
	{service.OpAdd, "add A B", "Element-wise sum A + B", nil, 2, twoMatrices},
	{service.OpSub, "sub A B", "Element-wise difference A - B", []string{"subtract"}, 2, twoMatrices},
	{service.OpMul, "mul A B", "Matrix product A × B", []string{"multiply"}, 2, twoMatrices},
	{service.OpScale, "scale A S", "Scalar multiple S·A", []string{"scalar"}, 2, matrixAndScalar},
	{service.OpTranspose, "transpose A", "Transpose Aᵀ", nil, 1, oneMatrix},
	{service.OpTrace, "trace A", "Sum of the diagonal of a square A", nil, 1, oneMatrix},
	{service.OpIdentity, "identity N", "N×N identity matrix", nil, 1, size},
	{service.OpDet, "det A", "Determinant (Gaussian elimination, partial pivoting)", []string{"determinant"}, 1, oneMatrix},
	{service.OpInv, "inv A", "Inverse (Gauss-Jordan) with determinant and residual", []string{"inverse"}, 1, oneMatrix},
}

func init() {
	for _, def := range opDefs {
		rootCmd.AddCommand(newOpCmd(def))
	}
}

func newOpCmd(def opDef) *cobra.Command {
	return &cobra.Command{
		Use:     def.use,
		Short:   def.short,
		Aliases: def.aliases,
		Args:    cobra.ExactArgs(def.args),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := def.parse(args)
			if err != nil {
				return err
			}

			return runOp(cmd, def.op, in)
		},
	}
}

func runOp(cmd *cobra.Command, op service.Op, in service.Literals) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := app.calc.Eval(ctx, string(op), in)
	if err != nil {
		var se *matrix.SingularError
		if errors.As(err, &se) {
			return fmt.Errorf("%w (determinant %g is below %g)", err, se.Det, matrix.SingularityEpsilon)
		}
		return err
	}

	return render(cmd.OutOrStdout(), res, app.cfg.Output.Format, app.cfg.Output.Precision)
}

func oneMatrix(args []string) (service.Literals, error) {
	return service.Literals{A: args[0]}, nil
}

func twoMatrices(args []string) (service.Literals, error) {
	return service.Literals{A: args[0], B: args[1]}, nil
}

func matrixAndScalar(args []string) (service.Literals, error) {
	s, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return service.Literals{}, fmt.Errorf("scalar %q is not a number", args[1])
	}

	return service.Literals{A: args[0], Scalar: s}, nil
}

func size(args []string) (service.Literals, error) {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return service.Literals{}, fmt.Errorf("size %q is not an integer", args[0])
	}

	return service.Literals{N: n}, nil
}
