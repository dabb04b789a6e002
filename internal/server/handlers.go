package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tangency "github.com/njchilds90/gotangency"
	"seehuhn.de/go/geom/vec"
)

// statusForCode maps a tool or engine error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case "":
		return http.StatusOK
	case tangency.CodeUnknownTool:
		return http.StatusNotFound
	case tangency.CodeInvalidParams:
		return http.StatusBadRequest
	case "INTERNAL":
		return http.StatusInternalServerError
	}
	return http.StatusUnprocessableEntity
}

// bindJSON decodes the body into obj and writes the error response on
// failure.
func bindJSON(c *gin.Context, logger *slog.Logger, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logger.Warn("Request body too large", "limit", tooLarge.Limit)
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: "Request body too large",
			Code:  "BODY_TOO_LARGE",
		})
		return false
	}
	logger.Warn("Invalid request body", "error", err)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request body: " + err.Error(),
		Code:  "INVALID_REQUEST",
	})
	return false
}

// HandleTool handles POST /tool.
//
// Response:
//
//	200 OK: ToolResponse
//	400 Bad Request: malformed body or INVALID_PARAMS
//	404 Not Found: UNKNOWN_TOOL
//	422 Unprocessable Entity: engine error (INVALID_INPUT, OUT_OF_DOMAIN, ...)
func (s *Server) HandleTool(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := s.logger.With("request_id", requestID, "handler", "HandleTool")

	var req tangency.ToolRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	start := time.Now()
	resp := tangency.HandleToolCall(req)

	tool := req.Tool
	if resp.Code == tangency.CodeUnknownTool {
		tool = "unknown"
	}
	s.metrics.observe(tool, resp.Code, start)

	if resp.Error != "" {
		logger.Info("Tool call failed", "tool", req.Tool, "code", resp.Code, "error", resp.Error)
	} else {
		logger.Debug("Tool call", "tool", req.Tool)
	}
	c.JSON(statusForCode(resp.Code), resp)
}

// HandleSchema handles GET /schema.
func (s *Server) HandleSchema(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(tangency.MCPToolSpec()))
}

// HandleHealth handles GET /health.
func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// writeResult records metrics for op and writes either the tangent or the
// engine error.
func (s *Server) writeResult(c *gin.Context, logger *slog.Logger, op string, start time.Time, r tangency.Result, err error) {
	code := tangency.ErrorCode(err)
	s.metrics.observe(op, code, start)
	if err != nil {
		logger.Info("Evaluation failed", "code", code, "error", err)
		c.JSON(statusForCode(code), ErrorResponse{Error: err.Error(), Code: code})
		return
	}
	c.JSON(http.StatusOK, newTangentResponse(r))
}

// HandlePolynomialTangent handles POST /v1/polynomial/tangent.
func (s *Server) HandlePolynomialTangent(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := s.logger.With("request_id", requestID, "handler", "HandlePolynomialTangent")

	var req PolynomialTangentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	start := time.Now()
	r, err := tangency.EvaluateTangent(tangency.NewPolynomial(req.Coefficients...), *req.X)
	s.writeResult(c, logger, "polynomial_tangent", start, r, err)
}

// HandleCircleTangent handles POST /v1/circle/tangent.
func (s *Server) HandleCircleTangent(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := s.logger.With("request_id", requestID, "handler", "HandleCircleTangent")

	var req CircleTangentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	start := time.Now()
	circle := tangency.Circle{
		Center: vec.Vec2{X: req.CenterX, Y: req.CenterY},
		Radius: *req.Radius,
	}
	r, err := tangency.TangentOnCircle(circle, vec.Vec2{X: *req.X, Y: *req.Y})
	s.writeResult(c, logger, "circle_tangent", start, r, err)
}

// HandleEllipseTangent handles POST /v1/ellipse/tangent. The point is chosen
// by x (upper half) or by the parameter t.
func (s *Server) HandleEllipseTangent(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := s.logger.With("request_id", requestID, "handler", "HandleEllipseTangent")

	var req EllipseTangentRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	if (req.X == nil) == (req.T == nil) {
		logger.Warn("Ambiguous ellipse point")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "exactly one of x or t is required",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	start := time.Now()
	e := tangency.Ellipse{A: *req.A, B: *req.B}
	if req.X != nil {
		r, err := tangency.TangentOnEllipseAtX(e, *req.X)
		s.writeResult(c, logger, "ellipse_tangent", start, r, err)
		return
	}
	r, err := tangency.TangentOnEllipseAtParam(e, *req.T)
	s.writeResult(c, logger, "ellipse_tangent_param", start, r, err)
}
