package server

import (
	tangency "github.com/njchilds90/gotangency"
)

// ErrorResponse is the body of every non-2xx response outside /tool.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the stable error code, e.g. OUT_OF_DOMAIN.
	Code string `json:"code,omitempty"`
}

// PolynomialTangentRequest is the body of POST /v1/polynomial/tangent.
// Coefficients are in ascending order.
type PolynomialTangentRequest struct {
	Coefficients []float64 `json:"coefficients" binding:"required,min=1"`
	X            *float64  `json:"x" binding:"required"`
}

// CircleTangentRequest is the body of POST /v1/circle/tangent. The center
// defaults to the origin.
type CircleTangentRequest struct {
	Radius  *float64 `json:"radius" binding:"required"`
	X       *float64 `json:"x" binding:"required"`
	Y       *float64 `json:"y" binding:"required"`
	CenterX float64  `json:"center_x"`
	CenterY float64  `json:"center_y"`
}

// EllipseTangentRequest is the body of POST /v1/ellipse/tangent. Exactly one
// of X and T must be set.
type EllipseTangentRequest struct {
	A *float64 `json:"a" binding:"required"`
	B *float64 `json:"b" binding:"required"`
	X *float64 `json:"x"`
	T *float64 `json:"t"`
}

// Point is a JSON point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FociResponse carries ellipse focal data.
type FociResponse struct {
	C           float64 `json:"c"`
	F1          Point   `json:"f1"`
	F2          Point   `json:"f2"`
	DistanceSum float64 `json:"distance_sum"`
}

// TangentResponse is the body of a successful /v1 tangent call.
type TangentResponse struct {
	Point      Point          `json:"point"`
	Slope      tangency.Slope `json:"slope"`
	Tangent    string         `json:"tangent"`
	PointSlope string         `json:"point_slope"`
	Normal     string         `json:"normal"`
	Foci       *FociResponse  `json:"foci,omitempty"`
}

func newTangentResponse(r tangency.Result) TangentResponse {
	resp := TangentResponse{
		Point:      Point{X: r.Point.X, Y: r.Point.Y},
		Slope:      r.Slope,
		Tangent:    r.Tangent.String(),
		PointSlope: r.Tangent.PointSlope(),
		Normal:     r.Normal.String(),
	}
	if r.Foci != nil {
		resp.Foci = &FociResponse{
			C:           r.Foci.C,
			F1:          Point{X: r.Foci.F1.X, Y: r.Foci.F1.Y},
			F2:          Point{X: r.Foci.F2.X, Y: r.Foci.F2.Y},
			DistanceSum: r.Foci.DistanceSum,
		}
	}
	return resp
}
