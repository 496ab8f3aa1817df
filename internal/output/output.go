// Package output provides output formatters for layout results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/toastui/internal/toast"
)

// Result is one layout pass and the inputs that identify it.
type Result struct {
	ID             string            `json:"id,omitempty" yaml:"id,omitempty"`
	Device         string            `json:"device" yaml:"device"`
	Landscape      bool              `json:"landscape" yaml:"landscape"`
	ManualRotation bool              `json:"manual_rotation" yaml:"manual_rotation"`
	Text           string            `json:"text,omitempty" yaml:"text,omitempty"`
	HasImage       bool              `json:"has_image" yaml:"has_image"`
	Placed         toast.PlacedFrame `json:"placed" yaml:"placed"`
}

// Formatter formats layout results for output.
type Formatter interface {
	// Format writes the formatted result to the writer.
	Format(w io.Writer, r Result) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatPlain:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, yaml or plain)", s)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter()
	}
}
