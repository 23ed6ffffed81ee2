package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBool interprets free-form flag cells: "yes", "true", "1" and
// "y" in any case are true, everything else, including an empty or
// missing cell, is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "y":
		return true
	}
	return false
}

// ParseFloat parses a numeric cell. An empty cell is a missing value
// and yields nil rather than an error.
func ParseFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &v, nil
}
