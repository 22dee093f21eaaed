// Package validation holds the request-validation failure format and
// the loose numeric decoding used by the HTTP layer. Validation of a
// request happens before any store access; a failed parse produces a
// Problem and nothing else.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Issue describes one offending field. Path addresses the field the
// way the request body nests it, mixing object keys and array indexes,
// e.g. ["pumps", 0, "price"].
type Issue struct {
	Path    []interface{} `json:"path"`
	Message string        `json:"message"`
}

// Problem is the structured body returned for rejected requests.
type Problem struct {
	Type   string  `json:"type"`
	Status int     `json:"status"`
	Title  string  `json:"title"`
	Detail string  `json:"detail,omitempty"`
	Issues []Issue `json:"issues"`
}

// NewProblem builds a Problem for an invalid request body.
func NewProblem(issues []Issue) *Problem {
	return &Problem{
		Type:   "INVALID_REQUEST_BODY",
		Status: 400,
		Title:  "Invalid request body.",
		Detail: "Validation of request body failed.",
		Issues: issues,
	}
}

// Issues accumulates field-level violations during a parse.
type Issues []Issue

// Add records a violation at the given path.
func (is *Issues) Add(message string, path ...interface{}) {
	if path == nil {
		path = []interface{}{}
	}
	*is = append(*is, Issue{Path: path, Message: message})
}

// Number is a float64 that also accepts numeric strings on the wire,
// tolerating loosely-typed clients: 12.5, "12.5" and "-3" all decode.
type Number float64

// UnmarshalJSON decodes a JSON number or a string holding one.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*n = Number(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// Float64 returns the plain value.
func (n Number) Float64() float64 {
	return float64(n)
}
