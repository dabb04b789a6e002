package tangency

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"seehuhn.de/go/geom/vec"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	Code   string      `json:"code,omitempty"`
}

// Wire codes for failures that happen before the engine is reached.
const (
	CodeInvalidParams = "INVALID_PARAMS"
	CodeUnknownTool   = "UNKNOWN_TOOL"
)

func paramError(err error) ToolResponse {
	return ToolResponse{Error: err.Error(), Code: CodeInvalidParams}
}

func engineError(err error) ToolResponse {
	return ToolResponse{Error: err.Error(), Code: ErrorCode(err)}
}

// toNumber is cast.ToFloat64E without its nil → 0 and bool → 0/1
// conversions.
func toNumber(v interface{}) (float64, error) {
	switch v.(type) {
	case nil, bool:
		return 0, fmt.Errorf("unable to cast %#v to float64", v)
	}
	return cast.ToFloat64E(v)
}

// HandleToolCall dispatches one tool call. Numeric parameters may be JSON
// numbers or numeric strings; slopes may also be the string "vertical".
func HandleToolCall(req ToolRequest) ToolResponse {
	getNum := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, err := toNumber(v)
		if err != nil {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return f, nil
	}
	getOptNum := func(key string) (float64, error) {
		if _, ok := req.Params[key]; !ok {
			return 0, nil
		}
		return getNum(key)
	}
	getNums := func(keys ...string) ([]float64, error) {
		out := make([]float64, len(keys))
		for i, k := range keys {
			f, err := getNum(k)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	}
	getPoly := func(key string) (Polynomial, error) {
		v, ok := req.Params[key]
		if !ok {
			return Polynomial{}, fmt.Errorf("missing param: %s", key)
		}
		if fs, ok := v.([]float64); ok {
			return NewPolynomial(fs...), nil
		}
		items, err := cast.ToSliceE(v)
		if err != nil {
			return Polynomial{}, fmt.Errorf("param %s must be array", key)
		}
		coeffs := make([]float64, len(items))
		for i, item := range items {
			f, err := toNumber(item)
			if err != nil {
				return Polynomial{}, fmt.Errorf("param %s[%d] must be a number", key, i)
			}
			coeffs[i] = f
		}
		return NewPolynomial(coeffs...), nil
	}
	getSlope := func(key string) (Slope, error) {
		v, ok := req.Params[key]
		if !ok {
			return Slope{}, fmt.Errorf("missing param: %s", key)
		}
		if s, ok := v.(string); ok && strings.EqualFold(s, "vertical") {
			return Vertical, nil
		}
		f, err := toNumber(v)
		if err != nil {
			return Slope{}, fmt.Errorf("param %s must be a number or \"vertical\"", key)
		}
		return Finite(f), nil
	}

	respond := func(r Result) ToolResponse {
		return ToolResponse{Result: r.toJSON(), String: r.Tangent.String()}
	}
	respondRoots := func(xs []float64, err error) ToolResponse {
		if err != nil {
			return engineError(err)
		}
		strs := make([]string, len(xs))
		for i, x := range xs {
			strs[i] = fmtNum(x)
		}
		if xs == nil {
			xs = []float64{}
		}
		return ToolResponse{Result: xs, String: strings.Join(strs, ", ")}
	}

	switch req.Tool {
	case "polynomial_tangent":
		p, err := getPoly("coefficients")
		if err != nil {
			return paramError(err)
		}
		x, err := getNum("x")
		if err != nil {
			return paramError(err)
		}
		r, err := EvaluateTangent(p, x)
		if err != nil {
			return engineError(err)
		}
		return respond(r)

	case "quadratic_tangent":
		v, err := getNums("a", "b", "c", "x")
		if err != nil {
			return paramError(err)
		}
		r, err := EvaluateTangent(Quadratic(v[0], v[1], v[2]), v[3])
		if err != nil {
			return engineError(err)
		}
		return respond(r)

	case "derivative":
		p, err := getPoly("coefficients")
		if err != nil {
			return paramError(err)
		}
		if err := p.validate(); err != nil {
			return engineError(err)
		}
		d := p.Derivative()
		coeffs := d.Coefficients()
		if len(coeffs) == 0 {
			coeffs = []float64{0}
		}
		return ToolResponse{Result: coeffs, String: d.String(), LaTeX: d.LaTeX()}

	case "horizontal_tangents":
		p, err := getPoly("coefficients")
		if err != nil {
			return paramError(err)
		}
		return respondRoots(HorizontalTangents(p))

	case "parallel_tangents":
		f, err := getPoly("f")
		if err != nil {
			return paramError(err)
		}
		g, err := getPoly("g")
		if err != nil {
			return paramError(err)
		}
		return respondRoots(ParallelTangents(f, g))

	case "curve_angle":
		f, err := getPoly("f")
		if err != nil {
			return paramError(err)
		}
		g, err := getPoly("g")
		if err != nil {
			return paramError(err)
		}
		x, err := getNum("x")
		if err != nil {
			return paramError(err)
		}
		rad, err := AngleBetweenCurves(f, g, x)
		if err != nil {
			return engineError(err)
		}
		deg := rad * 180 / math.Pi
		return ToolResponse{
			Result: map[string]float64{"radians": rad, "degrees": deg},
			String: fmtNum(deg) + "°",
		}

	case "circle_tangent":
		v, err := getNums("r", "x", "y")
		if err != nil {
			return paramError(err)
		}
		cx, err := getOptNum("cx")
		if err != nil {
			return paramError(err)
		}
		cy, err := getOptNum("cy")
		if err != nil {
			return paramError(err)
		}
		circle := Circle{Center: vec.Vec2{X: cx, Y: cy}, Radius: v[0]}
		r, err := TangentOnCircle(circle, vec.Vec2{X: v[1], Y: v[2]})
		if err != nil {
			return engineError(err)
		}
		return respond(r)

	case "circle_tangents_with_slope":
		rad, err := getNum("r")
		if err != nil {
			return paramError(err)
		}
		m, err := getSlope("slope")
		if err != nil {
			return paramError(err)
		}
		lines, err := Circle{Radius: rad}.TangentsWithSlope(m)
		if err != nil {
			return engineError(err)
		}
		return ToolResponse{
			Result: []interface{}{lines[0].toJSON(), lines[1].toJSON()},
			String: lines[0].String() + "; " + lines[1].String(),
		}

	case "circle_tangents_from_point":
		v, err := getNums("r", "x", "y")
		if err != nil {
			return paramError(err)
		}
		rs, err := Circle{Radius: v[0]}.TangentsFromPoint(vec.Vec2{X: v[1], Y: v[2]})
		if err != nil {
			return engineError(err)
		}
		out := make([]interface{}, len(rs))
		strs := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.toJSON()
			strs[i] = r.Tangent.String()
		}
		return ToolResponse{Result: out, String: strings.Join(strs, "; ")}

	case "ellipse_tangent":
		v, err := getNums("a", "b", "x")
		if err != nil {
			return paramError(err)
		}
		r, err := TangentOnEllipseAtX(Ellipse{A: v[0], B: v[1]}, v[2])
		if err != nil {
			return engineError(err)
		}
		return respond(r)

	case "ellipse_tangent_param":
		v, err := getNums("a", "b", "t")
		if err != nil {
			return paramError(err)
		}
		r, err := TangentOnEllipseAtParam(Ellipse{A: v[0], B: v[1]}, v[2])
		if err != nil {
			return engineError(err)
		}
		return respond(r)

	case "ellipse_points_with_slope":
		v, err := getNums("a", "b")
		if err != nil {
			return paramError(err)
		}
		m, err := getSlope("slope")
		if err != nil {
			return paramError(err)
		}
		pts, err := Ellipse{A: v[0], B: v[1]}.PointsWithSlope(m)
		if err != nil {
			return engineError(err)
		}
		return ToolResponse{
			Result: []interface{}{pointJSON(pts[0]), pointJSON(pts[1])},
			String: fmt.Sprintf("(%s, %s), (%s, %s)",
				fmtNum(pts[0].X), fmtNum(pts[0].Y), fmtNum(pts[1].X), fmtNum(pts[1].Y)),
		}

	case "negative_reciprocal":
		m, err := getSlope("slope")
		if err != nil {
			return paramError(err)
		}
		n, err := NegativeReciprocal(m)
		if err != nil {
			return engineError(err)
		}
		return ToolResponse{Result: n, String: n.String()}

	case "focal_distance_sum":
		v, err := getNums("x", "y", "f1x", "f1y", "f2x", "f2y")
		if err != nil {
			return paramError(err)
		}
		if err := checkFinite("coordinates", v...); err != nil {
			return engineError(err)
		}
		sum := SumOfFocalDistances(vec.Vec2{X: v[0], Y: v[1]}, vec.Vec2{X: v[2], Y: v[3]}, vec.Vec2{X: v[4], Y: v[5]})
		return ToolResponse{Result: sum, String: fmtNum(sum)}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool), Code: CodeUnknownTool}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	tools := []map[string]interface{}{
		ts("polynomial_tangent", "Tangent and normal to c0 + c1·x + … + cn·xⁿ at x", []string{"coefficients", "x"}, map[string]string{"coefficients": "array", "x": "number"}),
		ts("quadratic_tangent", "Tangent and normal to a·x² + b·x + c at x", []string{"a", "b", "c", "x"}, map[string]string{"a": "number", "b": "number", "c": "number", "x": "number"}),
		ts("derivative", "Derivative coefficients (ascending order)", []string{"coefficients"}, map[string]string{"coefficients": "array"}),
		ts("horizontal_tangents", "x where the tangent is horizontal", []string{"coefficients"}, map[string]string{"coefficients": "array"}),
		ts("parallel_tangents", "x where f and g have parallel tangents", []string{"f", "g"}, map[string]string{"f": "array", "g": "array"}),
		ts("curve_angle", "Acute angle between the tangents of f and g at x", []string{"f", "g", "x"}, map[string]string{"f": "array", "g": "array", "x": "number"}),
		ts("circle_tangent", "Tangent to (x-cx)² + (y-cy)² = r² at (x, y); the center defaults to the origin", []string{"r", "x", "y"}, map[string]string{"r": "number", "x": "number", "y": "number", "cx": "number", "cy": "number"}),
		ts("circle_tangents_with_slope", "Both tangents to x² + y² = r² with a given slope", []string{"r", "slope"}, map[string]string{"r": "number", "slope": "number"}),
		ts("circle_tangents_from_point", "Tangents to x² + y² = r² through (x, y)", []string{"r", "x", "y"}, map[string]string{"r": "number", "x": "number", "y": "number"}),
		ts("ellipse_tangent", "Tangent to x²/a² + y²/b² = 1 at x (upper half), with foci", []string{"a", "b", "x"}, map[string]string{"a": "number", "b": "number", "x": "number"}),
		ts("ellipse_tangent_param", "Tangent to the ellipse at (a·cos t, b·sin t)", []string{"a", "b", "t"}, map[string]string{"a": "number", "b": "number", "t": "number"}),
		ts("ellipse_points_with_slope", "Points of the ellipse where the tangent has a given slope", []string{"a", "b", "slope"}, map[string]string{"a": "number", "b": "number", "slope": "number"}),
		ts("negative_reciprocal", "Perpendicular slope -1/m", []string{"slope"}, map[string]string{"slope": "number"}),
		ts("focal_distance_sum", "|P-F1| + |P-F2|", []string{"x", "y", "f1x", "f1y", "f2x", "f2y"}, map[string]string{"x": "number", "y": "number", "f1x": "number", "f1y": "number", "f2x": "number", "f2y": "number"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
