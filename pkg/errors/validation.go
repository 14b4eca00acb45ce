package errors

import (
	"math"
	"regexp"
	"strings"
)

// MaxDimension bounds the canvas width and height accepted at the boundary.
const MaxDimension = 10000

// MaxLines bounds the line count per axis accepted at the boundary.
const MaxLines = 100

// ValidateDimension checks that a canvas dimension is finite, positive and
// no larger than [MaxDimension].
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %g", name, v)
	}
	if v > MaxDimension {
		return New(ErrCodeInvalidInput, "%s too large (max %d), got %g", name, MaxDimension, v)
	}
	return nil
}

// ValidateRange checks that v lies in [lo, hi].
func ValidateRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return New(ErrCodeInvalidInput, "%s must be between %g and %g, got %g", name, lo, hi, v)
	}
	return nil
}

// ValidateLineCount checks a per-axis line count against [MaxLines]. Counts
// of zero or below mean no lines on that axis.
func ValidateLineCount(name string, n int) error {
	if n > MaxLines {
		return New(ErrCodeInvalidInput, "%s too large (max %d), got %d", name, MaxLines, n)
	}
	return nil
}

// hexColorRegex matches #RGB and #RRGGBB colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// ValidateHexColor checks that s is a #RGB or #RRGGBB color.
func ValidateHexColor(s string) error {
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidPalette, "invalid hex color: %q", s)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed. Matching is
// case-sensitive; callers normalize first.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "output format cannot be empty")
	}
	for _, a := range allowed {
		if a == format {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported output format %q (supported: %s)", format, strings.Join(allowed, ", "))
}
