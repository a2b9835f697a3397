// SPDX-License-Identifier: MIT

// Package service is the calculator front of the matrix kernel. It turns
// a named operation plus operands into a Result, enforces the operand
// size limit, and records one log line and one metric sample per call.
// The CLI and the HTTP server both go through Calculator.
package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/matcalc/internal/logging"
	"github.com/katalvlaran/matcalc/internal/monitoring"
	"github.com/katalvlaran/matcalc/literal"
	"github.com/katalvlaran/matcalc/matrix"
)

// DefaultMaxDim is the largest accepted row or column count.
const DefaultMaxDim = 10

// Limits bounds the operands a Calculator accepts.
type Limits struct {
	MaxDim int // rows and cols must both be ≤ MaxDim; < 1 means DefaultMaxDim
}

// Request is one operation on already-parsed operands.
// Fields an operation does not use are ignored.
type Request struct {
	Op     Op
	A, B   matrix.Matrix
	Scalar float64 // factor for OpScale
	N      int     // size for OpIdentity
}

// Literals is a Request whose operands are still in inline text form.
type Literals struct {
	A, B   string
	Scalar float64
	N      int
}

// Result carries whatever an operation produced. Exactly one of Matrix
// or Scalar is set; OpInv also fills Det and Residual.
type Result struct {
	Op       Op
	Matrix   *matrix.Dense
	Scalar   *float64
	Det      *float64 // determinant of A, reported by OpInv
	Residual *float64 // max |A·A⁻¹ − I|, reported by OpInv
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger attaches a structured logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Calculator) { c.metrics = m }
}

// Calculator dispatches operations to the matrix kernel.
// It holds no per-call state and is safe for concurrent use.
type Calculator struct {
	limits  Limits
	log     *logging.Logger
	metrics *monitoring.Metrics
}

// New builds a Calculator. Without options it logs nowhere and records
// no metrics.
func New(limits Limits, opts ...Option) *Calculator {
	if limits.MaxDim < 1 {
		limits.MaxDim = DefaultMaxDim
	}
	c := &Calculator{limits: limits, log: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Limits returns the effective limits.
func (c *Calculator) Limits() Limits { return c.limits }

// Eval parses op and the literal operands, then runs Calculate.
// Parse failures are logged and counted like kernel failures.
func (c *Calculator) Eval(ctx context.Context, op string, in Literals) (*Result, error) {
	o, err := ParseOp(op)
	if err != nil {
		c.observe(c.begin(opUnknown, nil), err)
		return nil, err
	}

	req := Request{Op: o, Scalar: in.Scalar, N: in.N}
	if o.Operands() >= 1 {
		if req.A, err = parseOperand("a", in.A); err != nil {
			c.observe(c.begin(string(o), nil), err)
			return nil, err
		}
	}
	if o.Operands() == 2 {
		if req.B, err = parseOperand("b", in.B); err != nil {
			c.observe(c.begin(string(o), nil), err)
			return nil, err
		}
	}

	return c.Calculate(ctx, req)
}

// parseOperand reads one literal; empty text is a missing operand.
func parseOperand(name, text string) (matrix.Matrix, error) {
	if text == "" {
		return nil, fmt.Errorf("operand %s: %w", name, ErrMissingOperand)
	}
	m, err := literal.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("operand %s: %w", name, err)
	}

	return m, nil
}

// Calculate runs req.Op.
//
// Errors:
//   - ctx.Err() when the context is already done.
//   - ErrUnknownOp, ErrMissingOperand, ErrTooLarge.
//   - ErrOverflow when the result holds NaN or ±Inf.
//   - kernel sentinels (matrix.ErrDimensionMismatch, matrix.ErrNonSquare,
//     matrix.ErrSingular, matrix.ErrInvalidDimensions) unchanged.
func (c *Calculator) Calculate(ctx context.Context, req Request) (*Result, error) {
	label := string(req.Op)
	if !req.Op.Known() {
		label = opUnknown
	}

	t := c.begin(label, req.A)
	res, err := c.calculate(ctx, req)
	if err == nil {
		if err = checkFinite(res); err != nil {
			res = nil
		}
	}
	c.observe(t, err)

	return res, err
}

func (c *Calculator) calculate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !req.Op.Known() {
		return nil, fmt.Errorf("%q: %w", req.Op, ErrUnknownOp)
	}
	if err := c.checkOperands(req); err != nil {
		return nil, err
	}

	res := &Result{Op: req.Op}
	var (
		m   matrix.Matrix
		v   float64
		err error
	)
	switch req.Op {
	case OpAdd:
		m, err = matrix.Add(req.A, req.B)
	case OpSub:
		m, err = matrix.Sub(req.A, req.B)
	case OpMul:
		m, err = matrix.Mul(req.A, req.B)
	case OpScale:
		m, err = matrix.Scale(req.A, req.Scalar)
	case OpTranspose:
		m, err = matrix.Transpose(req.A)
	case OpIdentity:
		m, err = matrix.NewIdentity(req.N)
	case OpTrace:
		if v, err = matrix.Trace(req.A); err == nil {
			res.Scalar = &v
		}
	case OpDet:
		if v, err = matrix.Determinant(req.A); err == nil {
			res.Scalar = &v
		}
	case OpInv:
		return c.inverse(req.A)
	default:
		return nil, fmt.Errorf("%q: %w", req.Op, ErrUnknownOp)
	}
	if err != nil {
		return nil, err
	}
	if m != nil {
		res.Matrix = m.(*matrix.Dense) // every kernel returns *Dense
	}

	return res, nil
}

// inverse reports A⁻¹ with its determinant and residual. A singular
// input still fails, with the determinant available via
// *matrix.SingularError.
func (c *Calculator) inverse(a matrix.Matrix) (*Result, error) {
	det, err := matrix.Determinant(a)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Inverse(a)
	if err != nil {
		return nil, err
	}
	residual, err := matrix.Residual(a, inv)
	if err != nil {
		return nil, err
	}

	return &Result{
		Op:       OpInv,
		Matrix:   inv.(*matrix.Dense),
		Det:      &det,
		Residual: &residual,
	}, nil
}

// checkOperands enforces presence and the size limit.
func (c *Calculator) checkOperands(req Request) error {
	limit := c.limits.MaxDim
	if req.Op == OpIdentity && req.N > limit {
		return fmt.Errorf("identity n=%d > %d: %w", req.N, limit, ErrTooLarge)
	}

	operands := []struct {
		name string
		m    matrix.Matrix
	}{{"a", req.A}, {"b", req.B}}
	for i := 0; i < req.Op.Operands(); i++ {
		o := operands[i]
		if matrix.ValidateNotNil(o.m) != nil {
			return fmt.Errorf("operand %s: %w", o.name, ErrMissingOperand)
		}
		if o.m.Rows() > limit || o.m.Cols() > limit {
			return fmt.Errorf("operand %s is %dx%d, limit %d: %w",
				o.name, o.m.Rows(), o.m.Cols(), limit, ErrTooLarge)
		}
	}

	return nil
}

// checkFinite rejects results holding NaN or ±Inf. Finite operands can
// still overflow inside the kernel, and no encoder can carry the result.
func checkFinite(res *Result) error {
	for _, s := range []struct {
		name string
		v    *float64
	}{{"value", res.Scalar}, {"determinant", res.Det}, {"residual", res.Residual}} {
		if s.v != nil && !isFinite(*s.v) {
			return fmt.Errorf("%s %g: %w", s.name, *s.v, ErrOverflow)
		}
	}
	if res.Matrix == nil {
		return nil
	}
	for i, row := range res.Matrix.ToRows() {
		for j, v := range row {
			if !isFinite(v) {
				return fmt.Errorf("cell (%d,%d) %g: %w", i, j, v, ErrOverflow)
			}
		}
	}

	return nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// opUnknown labels calls whose op name did not resolve, keeping metric
// cardinality bounded.
const opUnknown = "unknown"

// call tracks one in-flight operation for observe.
type call struct {
	op         string
	rows, cols int
	start      time.Time
	timer      *monitoring.Timer
}

// begin starts timing one call; a is the first operand, nil if absent.
func (c *Calculator) begin(op string, a matrix.Matrix) call {
	cl := call{op: op, start: time.Now()}
	if matrix.ValidateNotNil(a) == nil {
		cl.rows, cl.cols = a.Rows(), a.Cols()
	}
	cl.timer = monitoring.NewTimer(c.metrics, op, cl.rows*cl.cols)

	return cl
}

// observe emits the per-call log line and metric sample.
func (c *Calculator) observe(cl call, err error) {
	kind := ErrorKind(err)
	cl.timer.Stop(kind)

	fields := []zap.Field{
		logging.Op(cl.op),
		zap.Duration("duration", time.Since(cl.start)),
	}
	if cl.rows > 0 {
		fields = append(fields, logging.Shape("shape", cl.rows, cl.cols))
	}
	if err != nil {
		c.log.Info("operation failed", append(fields, zap.String("kind", kind), zap.Error(err))...)
		return
	}
	c.log.Debug("operation done", fields...)
}
