// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/matcalc/internal/service"
	"github.com/katalvlaran/matcalc/matrix"
)

// maxBodyBytes caps a request body; ten rows of ten long numbers fit easily.
const maxBodyBytes = 64 << 10

// OperationRequest is the JSON body of POST /v1/matrix/:op.
// Matrices use the inline literal form, e.g. "1,2;3,4".
type OperationRequest struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Scalar float64 `json:"scalar"`
	N      int     `json:"n"`
}

// ErrorResponse is the JSON body of every failed call.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Kind        string   `json:"kind,omitempty"`
	Determinant *float64 `json:"determinant,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) metricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) listOps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ops":     service.Ops,
		"max_dim": s.calc.Limits().MaxDim,
	})
}

func (s *Server) calculate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body: " + err.Error(), Kind: service.KindSyntax})
		return
	}

	res, err := s.calc.Eval(c.Request.Context(), c.Param("op"), service.Literals{
		A:      req.A,
		B:      req.B,
		Scalar: req.Scalar,
		N:      req.N,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res.View())
}

// fail maps a calculator error onto a status code and body.
func (s *Server) fail(c *gin.Context, err error) {
	kind := service.ErrorKind(err)
	body := ErrorResponse{Error: err.Error(), Kind: kind}

	var se *matrix.SingularError
	if errors.As(err, &se) && !math.IsNaN(se.Det) && !math.IsInf(se.Det, 0) {
		det := se.Det
		body.Determinant = &det
	}

	_ = c.Error(err)
	c.JSON(statusFor(kind), body)
}

// statusFor: malformed input is 400, well-formed but mathematically
// impossible input (including results beyond float64 range) is 422.
func statusFor(kind string) int {
	switch kind {
	case service.KindSingular, service.KindNonSquare, service.KindOverflow:
		return http.StatusUnprocessableEntity
	case service.KindCanceled:
		return http.StatusServiceUnavailable
	case service.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
