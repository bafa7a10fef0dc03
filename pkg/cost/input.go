package cost

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix matches the leading decimal number of a form value, so "12abc" reads as 12.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseInput converts a raw form value into a usable parameter.
// Non-numeric values read as 0 and negative values are clamped to 0.
func ParseInput(raw string) float64 {
	match := numericPrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Only reachable on exponent overflow, e.g. "1e999".
		return 0
	}
	return nonNegative(v)
}

// Clamp returns a copy of in with every field forced to a finite, non-negative value.
func (in Inputs) Clamp() Inputs {
	return Inputs{
		Employees:      nonNegative(in.Employees),
		ManagerSalary:  nonNegative(in.ManagerSalary),
		EmployeeSalary: nonNegative(in.EmployeeSalary),
		ManagerHours:   nonNegative(in.ManagerHours),
		EmployeeHours:  nonNegative(in.EmployeeHours),
		AdminHours:     nonNegative(in.AdminHours),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}
