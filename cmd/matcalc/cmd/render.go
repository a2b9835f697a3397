// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/katalvlaran/matcalc/internal/config"
	"github.com/katalvlaran/matcalc/internal/service"
	"github.com/katalvlaran/matcalc/literal"
)

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	labelStyle  = lipgloss.NewStyle().Bold(true)
)

// render writes res to w in the given format. json and yaml carry full
// float64 values; table and plain round to precision decimals.
func render(w io.Writer, res *service.Result, format string, precision int) error {
	switch format {
	case config.FormatJSON:
		b, err := sonic.MarshalIndent(res.View(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case config.FormatYAML:
		b, err := yaml.Marshal(res.View())
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case config.FormatPlain:
		return renderPlain(w, res, precision)
	case config.FormatTable:
		return renderTable(w, res, precision)
	default:
		return fmt.Errorf("output format %q: %w", format, config.ErrInvalid)
	}
}

func renderPlain(w io.Writer, res *service.Result, precision int) error {
	var b strings.Builder
	if res.Matrix != nil {
		for _, row := range literal.Rows(res.Matrix, precision) {
			b.WriteString(strings.Join(row, " "))
			b.WriteByte('\n')
		}
	}
	if res.Scalar != nil {
		b.WriteString(literal.FormatValue(*res.Scalar, precision))
		b.WriteByte('\n')
	}
	writeExtras(&b, res, precision, func(s ...string) string { return strings.Join(s, "") })
	_, err := io.WriteString(w, b.String())

	return err
}

func renderTable(w io.Writer, res *service.Result, precision int) error {
	var b strings.Builder
	if res.Matrix != nil {
		rows := literal.Rows(res.Matrix, precision)
		headers := make([]string, res.Matrix.Cols()+1)
		headers[0] = ""
		for j := 1; j < len(headers); j++ {
			headers[j] = strconv.Itoa(j - 1)
		}
		body := make([][]string, len(rows))
		for i, row := range rows {
			body[i] = append([]string{strconv.Itoa(i)}, row...)
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow || col == 0 {
					return headerStyle
				}
				return cellStyle
			}).
			Headers(headers...).
			Rows(body...)
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	if res.Scalar != nil {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(string(res.Op)+":"), literal.FormatValue(*res.Scalar, precision))
	}
	writeExtras(&b, res, precision, labelStyle.Render)

	_, err := io.WriteString(w, b.String())

	return err
}

// writeExtras appends the determinant and residual lines of an inverse.
func writeExtras(b *strings.Builder, res *service.Result, precision int, label func(...string) string) {
	if res.Det != nil {
		fmt.Fprintf(b, "%s %s\n", label("det:"), literal.FormatValue(*res.Det, precision))
	}
	if res.Residual != nil {
		fmt.Fprintf(b, "%s %.3g\n", label("residual:"), *res.Residual)
	}
}
