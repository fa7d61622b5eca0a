// json_output.go - JSON output support for scripting.
//
// Provides a standardized JSON envelope for every command so results can be
// consumed by other tools.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"io"
	"time"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponseStr creates a new error JSON response from a string.
func NewJSONErrorResponseStr(command string, errMsg string) *JSONResponse {
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errMsg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// PrintTo outputs the JSON response to w.
func (r *JSONResponse) PrintTo(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// SolveData represents the data returned by the solve command.
type SolveData struct {
	Equation     EquationInfo `json:"equation"`
	Discriminant float64      `json:"discriminant"`
	Nature       string       `json:"nature,omitempty"` // empty when a == 0: there are no roots to classify
	Roots        []RootInfo   `json:"roots"`
	Vertex       *PointInfo   `json:"vertex,omitempty"`
	Plot         *PlotInfo    `json:"plot,omitempty"`
}

// EquationInfo holds the coefficients as entered.
type EquationInfo struct {
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	C      float64 `json:"c"`
	Legend string  `json:"legend"`
}

// RootInfo is one root split into parts plus its display text.
type RootInfo struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
	Text string  `json:"text"`
}

// PointInfo is a point on the curve.
type PointInfo struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlotInfo describes the chart that was rendered.
type PlotInfo struct {
	Renderer string  `json:"renderer"`
	Output   string  `json:"output,omitempty"`
	XMin     float64 `json:"x_min"`
	XMax     float64 `json:"x_max"`
	Points   int     `json:"points"`
}

// ConfigData represents the data returned by "config show".
type ConfigData struct {
	Path   string      `json:"path,omitempty"`
	Exists bool        `json:"exists"`
	Config interface{} `json:"config"`
}

// ConfigValueData represents the data returned by "config get" and "config set".
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
	Path  string      `json:"path,omitempty"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
