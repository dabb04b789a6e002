package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPoly(t *testing.T) {
	out, err := run(t, "poly", "--coef", "1,1,-2,1", "--x", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "f(x)      x^3 - 2x^2 + x + 1")
	assert.Contains(t, out, "f'(x)     3x^2 - 4x + 1")
	assert.Contains(t, out, "point     (2, 3)")
	assert.Contains(t, out, "slope     5")
	assert.Contains(t, out, "tangent   y = 5x - 7")
	assert.Contains(t, out, "y - 3 = 5(x - 2)")
}

func TestPoly_JSON(t *testing.T) {
	out, err := run(t, "--json", "poly", "--coef", "0,0,1", "--x", "2")
	require.NoError(t, err)

	var resp struct {
		String string `json:"string"`
		Result struct {
			Slope float64 `json:"slope"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "y = 4x - 4", resp.String)
	assert.Equal(t, 4.0, resp.Result.Slope)
}

func TestCircle(t *testing.T) {
	out, err := run(t, "circle", "--r", "5", "--x", "3", "--y", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "slope     -0.75")
	assert.Contains(t, out, "normal    y = 1.33333x")
}

func TestCircle_OffCurve(t *testing.T) {
	_, err := run(t, "circle", "--r", "5", "--x", "3", "--y", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "point not on curve")
}

func TestCircle_JSONError(t *testing.T) {
	out, err := run(t, "--json", "circle", "--r", "5", "--x", "3", "--y", "5", "--cx", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POINT_NOT_ON_CURVE")
	assert.Contains(t, out, `"code": "POINT_NOT_ON_CURVE"`)
}

func TestEllipse_ByX(t *testing.T) {
	out, err := run(t, "ellipse", "--a", "5", "--b", "3", "--x", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "point     (3, 2.4)")
	assert.Contains(t, out, "foci      (±4, 0)")
	assert.Contains(t, out, "|PF1|+|PF2| = 10")
}

func TestEllipse_ByParam(t *testing.T) {
	out, err := run(t, "ellipse", "--a", "3", "--b", "2", "--t", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "slope     vertical")
	assert.Contains(t, out, "tangent   x = 3")
}

func TestEllipse_FlagRules(t *testing.T) {
	_, err := run(t, "ellipse", "--a", "3", "--b", "2")
	assert.Error(t, err, "one of --x or --t is required")

	_, err = run(t, "ellipse", "--a", "3", "--b", "2", "--x", "1", "--t", "1")
	assert.Error(t, err, "--x and --t are exclusive")

	_, err = run(t, "ellipse", "--a", "2", "--b", "3", "--x", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported orientation")
}

func TestHorizontal(t *testing.T) {
	out, err := run(t, "horizontal", "--coef", "0,-3,0,1")
	require.NoError(t, err)
	assert.Equal(t, "x = -1, 1\n", out)

	out, err = run(t, "horizontal", "--coef", "1,1")
	require.NoError(t, err)
	assert.Equal(t, "no horizontal tangents\n", out)

	_, err = run(t, "horizontal", "--coef", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "infinite solutions")
}
