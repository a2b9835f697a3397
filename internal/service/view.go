// SPDX-License-Identifier: MIT

package service

// View is the serialisable form of a Result shared by the JSON API and
// the CLI's json/yaml output.
type View struct {
	Op          Op          `json:"op" yaml:"op"`
	Matrix      [][]float64 `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	Scalar      *float64    `json:"scalar,omitempty" yaml:"scalar,omitempty"`
	Determinant *float64    `json:"determinant,omitempty" yaml:"determinant,omitempty"`
	Residual    *float64    `json:"residual,omitempty" yaml:"residual,omitempty"`
}

// View converts r; the matrix is deep-copied.
func (r *Result) View() View {
	v := View{
		Op:          r.Op,
		Scalar:      r.Scalar,
		Determinant: r.Det,
		Residual:    r.Residual,
	}
	if r.Matrix != nil {
		v.Matrix = r.Matrix.ToRows()
	}

	return v
}
