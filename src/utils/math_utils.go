package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundFloat rounds a float64 to a specified number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// ParseFloat parses a report number, ignoring surrounding whitespace
// (including non-breaking spaces).
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
