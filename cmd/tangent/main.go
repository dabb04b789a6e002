// cmd/tangent/main.go: command-line tangent and normal lines
//
// Usage:
//
//	tangent poly --coef 1,1,-2,1 --x 2
//	tangent circle --r 5 --x 3 --y 4
//	tangent ellipse --a 3 --b 2 --t 0.5236
//	tangent horizontal --coef 0,-3,0,1
//
// Coefficients are in ascending order. --json prints the tool response.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tangency "github.com/njchilds90/gotangency"
	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/vec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tangent:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var asJSON bool
	root := &cobra.Command{
		Use:           "tangent",
		Short:         "Closed-form tangent and normal lines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print the tool response as JSON")

	root.AddCommand(
		newPolyCmd(&asJSON),
		newCircleCmd(&asJSON),
		newEllipseCmd(&asJSON),
		newHorizontalCmd(&asJSON),
	)
	return root
}

func newPolyCmd(asJSON *bool) *cobra.Command {
	var (
		coef []float64
		x    float64
	)
	cmd := &cobra.Command{
		Use:   "poly",
		Short: "Tangent to a polynomial at x",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *asJSON {
				return runTool(cmd.OutOrStdout(), "polynomial_tangent", map[string]interface{}{
					"coefficients": floatsParam(coef),
					"x":            x,
				})
			}
			p := tangency.NewPolynomial(coef...)
			r, err := tangency.EvaluateTangent(p, x)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "f(x)      %s\n", p)
			fmt.Fprintf(w, "f'(x)     %s\n", p.Derivative())
			printResult(w, r)
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&coef, "coef", nil, "coefficients c0,c1,...,cn")
	cmd.Flags().Float64Var(&x, "x", 0, "x-coordinate of the tangent point")
	_ = cmd.MarkFlagRequired("coef")
	_ = cmd.MarkFlagRequired("x")
	return cmd
}

func newCircleCmd(asJSON *bool) *cobra.Command {
	var r, x, y, cx, cy float64
	cmd := &cobra.Command{
		Use:   "circle",
		Short: "Tangent to a circle at (x, y)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *asJSON {
				return runTool(cmd.OutOrStdout(), "circle_tangent", map[string]interface{}{
					"r": r, "x": x, "y": y, "cx": cx, "cy": cy,
				})
			}
			c := tangency.Circle{Center: vec.Vec2{X: cx, Y: cy}, Radius: r}
			res, err := tangency.TangentOnCircle(c, vec.Vec2{X: x, Y: y})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().Float64Var(&r, "r", 0, "radius")
	cmd.Flags().Float64Var(&x, "x", 0, "x-coordinate of the point")
	cmd.Flags().Float64Var(&y, "y", 0, "y-coordinate of the point")
	cmd.Flags().Float64Var(&cx, "cx", 0, "x-coordinate of the center")
	cmd.Flags().Float64Var(&cy, "cy", 0, "y-coordinate of the center")
	_ = cmd.MarkFlagRequired("r")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

func newEllipseCmd(asJSON *bool) *cobra.Command {
	var a, b, x, t float64
	cmd := &cobra.Command{
		Use:   "ellipse",
		Short: "Tangent to x²/a² + y²/b² = 1 at x (upper half) or at parameter t",
		RunE: func(cmd *cobra.Command, args []string) error {
			byParam := cmd.Flags().Changed("t")
			if *asJSON {
				if byParam {
					return runTool(cmd.OutOrStdout(), "ellipse_tangent_param", map[string]interface{}{"a": a, "b": b, "t": t})
				}
				return runTool(cmd.OutOrStdout(), "ellipse_tangent", map[string]interface{}{"a": a, "b": b, "x": x})
			}
			e := tangency.Ellipse{A: a, B: b}
			var (
				res tangency.Result
				err error
			)
			if byParam {
				res, err = tangency.TangentOnEllipseAtParam(e, t)
			} else {
				res, err = tangency.TangentOnEllipseAtX(e, x)
			}
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().Float64Var(&a, "a", 0, "semi-axis along x")
	cmd.Flags().Float64Var(&b, "b", 0, "semi-axis along y")
	cmd.Flags().Float64Var(&x, "x", 0, "x-coordinate on the upper half")
	cmd.Flags().Float64Var(&t, "t", 0, "parameter t of (a·cos t, b·sin t)")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	cmd.MarkFlagsMutuallyExclusive("x", "t")
	cmd.MarkFlagsOneRequired("x", "t")
	return cmd
}

func newHorizontalCmd(asJSON *bool) *cobra.Command {
	var coef []float64
	cmd := &cobra.Command{
		Use:   "horizontal",
		Short: "x-values where a polynomial has a horizontal tangent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *asJSON {
				return runTool(cmd.OutOrStdout(), "horizontal_tangents", map[string]interface{}{
					"coefficients": floatsParam(coef),
				})
			}
			xs, err := tangency.HorizontalTangents(tangency.NewPolynomial(coef...))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(xs) == 0 {
				fmt.Fprintln(w, "no horizontal tangents")
				return nil
			}
			strs := make([]string, len(xs))
			for i, v := range xs {
				strs[i] = fmt.Sprintf("%.6g", v)
			}
			fmt.Fprintf(w, "x = %s\n", strings.Join(strs, ", "))
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&coef, "coef", nil, "coefficients c0,c1,...,cn")
	_ = cmd.MarkFlagRequired("coef")
	return cmd
}

func floatsParam(xs []float64) []interface{} {
	out := make([]interface{}, len(xs))
	for i, v := range xs {
		out[i] = v
	}
	return out
}

// runTool dispatches through the tool surface, so --json prints the same
// ToolResponse the MCP server returns.
func runTool(w io.Writer, tool string, params map[string]interface{}) error {
	resp := tangency.HandleToolCall(tangency.ToolRequest{Tool: tool, Params: params})
	if err := writeJSON(w, resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("%s: %s", resp.Code, resp.Error)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, r tangency.Result) {
	fmt.Fprintf(w, "point     (%.6g, %.6g)\n", r.Point.X, r.Point.Y)
	fmt.Fprintf(w, "slope     %s\n", r.Slope)
	fmt.Fprintf(w, "tangent   %s\n", r.Tangent)
	fmt.Fprintf(w, "          %s\n", r.Tangent.PointSlope())
	fmt.Fprintf(w, "normal    %s\n", r.Normal)
	if r.Foci != nil {
		fmt.Fprintf(w, "foci      (±%.6g, 0)\n", r.Foci.C)
		fmt.Fprintf(w, "|PF1|+|PF2| = %.6g\n", r.Foci.DistanceSum)
	}
}
