package tangency_test

import (
	"encoding/json"
	"strings"
	"testing"

	tangency "github.com/njchilds90/gotangency"
)

// ============================================================
// MCP tool call tests
// ============================================================

func call(tool string, params map[string]interface{}) tangency.ToolResponse {
	return tangency.HandleToolCall(tangency.ToolRequest{Tool: tool, Params: params})
}

func TestHandleToolCall_PolynomialTangent(t *testing.T) {
	resp := call("polynomial_tangent", map[string]interface{}{
		"coefficients": []interface{}{0.0, 0.0, 1.0},
		"x":            2.0,
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "y = 4x - 4" {
		t.Errorf("want y = 4x - 4, got %s", resp.String)
	}
	m, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map result, got %T", resp.Result)
	}
	if s, _ := m["slope"].(tangency.Slope).Value(); s != 4 {
		t.Errorf("want slope 4, got %v", m["slope"])
	}
}

func TestHandleToolCall_NumericStrings(t *testing.T) {
	resp := call("quadratic_tangent", map[string]interface{}{
		"a": "1", "b": 0, "c": "0", "x": "2",
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "y = 4x - 4" {
		t.Errorf("want y = 4x - 4, got %s", resp.String)
	}
}

func TestHandleToolCall_Derivative(t *testing.T) {
	resp := call("derivative", map[string]interface{}{
		"coefficients": []interface{}{-7.0, 0.0, 0.0, 1.0},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "3x^2" || resp.LaTeX != "3x^{2}" {
		t.Errorf("want 3x^2 / 3x^{2}, got %s / %s", resp.String, resp.LaTeX)
	}
}

func TestHandleToolCall_DerivativeOfConstant(t *testing.T) {
	resp := call("derivative", map[string]interface{}{"coefficients": []interface{}{5.0}})
	coeffs, ok := resp.Result.([]float64)
	if !ok || len(coeffs) != 1 || coeffs[0] != 0 {
		t.Errorf("want [0], got %v", resp.Result)
	}
}

func TestHandleToolCall_HorizontalTangents(t *testing.T) {
	resp := call("horizontal_tangents", map[string]interface{}{
		"coefficients": []interface{}{0.0, -3.0, 0.0, 1.0},
	})
	xs, ok := resp.Result.([]float64)
	if !ok {
		t.Fatalf("expected []float64 result, got %T", resp.Result)
	}
	if len(xs) != 2 || !near(xs[0], -1, 1e-12) || !near(xs[1], 1, 1e-12) {
		t.Errorf("want [-1 1], got %v", xs)
	}
}

func TestHandleToolCall_HorizontalTangentsNone(t *testing.T) {
	resp := call("horizontal_tangents", map[string]interface{}{
		"coefficients": []interface{}{0.0, 1.0},
	})
	xs, ok := resp.Result.([]float64)
	if !ok || len(xs) != 0 {
		t.Errorf("want empty list, got %#v", resp.Result)
	}
	b, _ := json.Marshal(resp)
	if !strings.Contains(string(b), `"result":[]`) {
		t.Errorf("empty list should encode as [], got %s", b)
	}
}

func TestHandleToolCall_InfiniteSolutions(t *testing.T) {
	resp := call("parallel_tangents", map[string]interface{}{
		"f": []interface{}{0.0, 0.0, 1.0},
		"g": []interface{}{3.0, 0.0, 1.0},
	})
	if resp.Code != "INFINITE_SOLUTIONS" {
		t.Errorf("want INFINITE_SOLUTIONS, got %q (%s)", resp.Code, resp.Error)
	}
}

func TestHandleToolCall_CurveAngle(t *testing.T) {
	resp := call("curve_angle", map[string]interface{}{
		"f": []interface{}{0.0, 1.0},
		"g": []interface{}{0.0, -1.0},
		"x": 0.0,
	})
	m, ok := resp.Result.(map[string]float64)
	if !ok {
		t.Fatalf("expected map result, got %T (%s)", resp.Result, resp.Error)
	}
	if !near(m["degrees"], 90, 1e-12) {
		t.Errorf("want 90°, got %v", m["degrees"])
	}
}

func TestHandleToolCall_CircleTangent(t *testing.T) {
	resp := call("circle_tangent", map[string]interface{}{"r": 5.0, "x": 3.0, "y": 4.0})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "y = -0.75x + 6.25" {
		t.Errorf("want y = -0.75x + 6.25, got %s", resp.String)
	}
}

func TestHandleToolCall_CircleTangentNotOnCurve(t *testing.T) {
	resp := call("circle_tangent", map[string]interface{}{"r": 5.0, "x": 3.0, "y": 5.0})
	if resp.Code != "POINT_NOT_ON_CURVE" {
		t.Errorf("want POINT_NOT_ON_CURVE, got %q", resp.Code)
	}
}

func TestHandleToolCall_CircleTangentsWithVerticalSlope(t *testing.T) {
	resp := call("circle_tangents_with_slope", map[string]interface{}{"r": 2.0, "slope": "vertical"})
	if resp.String != "x = -2; x = 2" {
		t.Errorf("want x = -2; x = 2, got %q (%s)", resp.String, resp.Error)
	}
}

func TestHandleToolCall_CircleTangentsFromPoint(t *testing.T) {
	resp := call("circle_tangents_from_point", map[string]interface{}{"r": 3.0, "x": 5.0, "y": 0.0})
	rs, ok := resp.Result.([]interface{})
	if !ok || len(rs) != 2 {
		t.Fatalf("want two tangents, got %#v (%s)", resp.Result, resp.Error)
	}
}

func TestHandleToolCall_EllipseTangent(t *testing.T) {
	resp := call("ellipse_tangent", map[string]interface{}{"a": 5.0, "b": 3.0, "x": 3.0})
	m, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map result, got %T (%s)", resp.Result, resp.Error)
	}
	foci, ok := m["foci"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected foci, got %v", m["foci"])
	}
	if !near(foci["distance_sum"].(float64), 10, 1e-9) {
		t.Errorf("want focal sum 10, got %v", foci["distance_sum"])
	}
}

func TestHandleToolCall_EllipseErrors(t *testing.T) {
	cases := []struct {
		params map[string]interface{}
		want   string
	}{
		{map[string]interface{}{"a": 3.0, "b": 2.0, "x": 4.0}, "OUT_OF_DOMAIN"},
		{map[string]interface{}{"a": 2.0, "b": 3.0, "x": 1.0}, "UNSUPPORTED_ORIENTATION"},
		{map[string]interface{}{"a": 0.0, "b": 3.0, "x": 1.0}, "INVALID_INPUT"},
		{map[string]interface{}{"a": 3.0, "b": 2.0}, tangency.CodeInvalidParams},
		{map[string]interface{}{"a": 3.0, "b": 2.0, "x": "left"}, tangency.CodeInvalidParams},
	}
	for _, tc := range cases {
		resp := call("ellipse_tangent", tc.params)
		if resp.Code != tc.want {
			t.Errorf("%v: want %s, got %q (%s)", tc.params, tc.want, resp.Code, resp.Error)
		}
		if resp.Result != nil {
			t.Errorf("%v: failed call should carry no result, got %v", tc.params, resp.Result)
		}
	}
}

func TestHandleToolCall_EllipseTangentParam(t *testing.T) {
	resp := call("ellipse_tangent_param", map[string]interface{}{"a": 3.0, "b": 2.0, "t": 0.0})
	m, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map result, got %T (%s)", resp.Result, resp.Error)
	}
	if !m["slope"].(tangency.Slope).IsVertical() {
		t.Errorf("want vertical slope at t=0, got %v", m["slope"])
	}
	if resp.String != "x = 3" {
		t.Errorf("want x = 3, got %s", resp.String)
	}
}

func TestHandleToolCall_EllipsePointsWithSlope(t *testing.T) {
	resp := call("ellipse_points_with_slope", map[string]interface{}{"a": 3.0, "b": 2.0, "slope": -0.5})
	if resp.String != "(1.8, 1.6), (-1.8, -1.6)" {
		t.Errorf("want (1.8, 1.6), (-1.8, -1.6), got %q (%s)", resp.String, resp.Error)
	}
}

func TestHandleToolCall_NegativeReciprocal(t *testing.T) {
	cases := []struct {
		slope interface{}
		str   string
		code  string
	}{
		{4.0, "-0.25", ""},
		{"vertical", "0", ""},
		{0.0, "", "UNDEFINED_SLOPE"},
		{"steep", "", tangency.CodeInvalidParams},
	}
	for _, tc := range cases {
		resp := call("negative_reciprocal", map[string]interface{}{"slope": tc.slope})
		if resp.String != tc.str || resp.Code != tc.code {
			t.Errorf("slope %v: want (%q, %q), got (%q, %q)", tc.slope, tc.str, tc.code, resp.String, resp.Code)
		}
	}
}

func TestHandleToolCall_FocalDistanceSum(t *testing.T) {
	resp := call("focal_distance_sum", map[string]interface{}{
		"x": 3.0, "y": 2.4, "f1x": 4.0, "f1y": 0.0, "f2x": -4.0, "f2y": 0.0,
	})
	sum, ok := resp.Result.(float64)
	if !ok || !near(sum, 10, 1e-12) {
		t.Errorf("want 10, got %v (%s)", resp.Result, resp.Error)
	}
}

func TestHandleToolCall_MissingCoefficients(t *testing.T) {
	resp := call("polynomial_tangent", map[string]interface{}{"x": 1.0})
	if resp.Code != tangency.CodeInvalidParams {
		t.Errorf("want %s, got %q", tangency.CodeInvalidParams, resp.Code)
	}
}

func TestHandleToolCall_NullAndBoolParams(t *testing.T) {
	cases := []struct {
		tool   string
		params map[string]interface{}
	}{
		{"quadratic_tangent", map[string]interface{}{"a": 1, "b": 0, "c": 0, "x": nil}},
		{"quadratic_tangent", map[string]interface{}{"a": true, "b": 0, "c": 0, "x": 2}},
		{"polynomial_tangent", map[string]interface{}{"coefficients": []interface{}{0.0, nil, 1.0}, "x": 2}},
		{"polynomial_tangent", map[string]interface{}{"coefficients": []interface{}{false, 1.0}, "x": 2}},
		{"negative_reciprocal", map[string]interface{}{"slope": nil}},
		{"circle_tangent", map[string]interface{}{"r": 5, "x": 3, "y": 4, "cx": true}},
	}
	for _, tc := range cases {
		resp := call(tc.tool, tc.params)
		if resp.Code != tangency.CodeInvalidParams {
			t.Errorf("%s %v: want %s, got %+v", tc.tool, tc.params, tangency.CodeInvalidParams, resp)
		}
	}
}

func TestHandleToolCall_Float64Coefficients(t *testing.T) {
	resp := call("polynomial_tangent", map[string]interface{}{
		"coefficients": []float64{0, 0, 1},
		"x":            2.0,
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "y = 4x - 4" {
		t.Errorf("want y = 4x - 4, got %s", resp.String)
	}
}

func TestHandleToolCall_UnknownTool(t *testing.T) {
	resp := call("nonexistent", map[string]interface{}{})
	if resp.Error == "" || resp.Code != tangency.CodeUnknownTool {
		t.Errorf("want UNKNOWN_TOOL error, got %+v", resp)
	}
}

func TestMCPToolSpec(t *testing.T) {
	spec := tangency.MCPToolSpec()
	for _, name := range []string{"polynomial_tangent", "circle_tangent", "ellipse_tangent", "negative_reciprocal"} {
		if !strings.Contains(spec, name) {
			t.Errorf("MCP spec should contain %q", name)
		}
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(spec), &m); err != nil {
		t.Errorf("MCP spec should be valid JSON: %v", err)
	}
}
