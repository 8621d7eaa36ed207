// Package convert implements the temperature conversions that recurred
// across the original scripts, collapsed into one table-driven converter.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unit is a temperature scale.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
	Kelvin     Unit = "K"
)

const absoluteZeroK = 0.0

var ErrUnknownUnit = errors.New("unknown temperature unit")

// ErrBelowAbsoluteZero is returned for physically impossible inputs.
var ErrBelowAbsoluteZero = errors.New("temperature below absolute zero")

// Temperature converts value from one unit to another.
func Temperature(value float64, from, to Unit) (float64, error) {
	kelvin, err := toKelvin(value, from)
	if err != nil {
		return 0, err
	}
	if kelvin < absoluteZeroK {
		return 0, fmt.Errorf("%w: %g%s", ErrBelowAbsoluteZero, value, from)
	}
	return fromKelvin(kelvin, to)
}

// Parse reads inputs like "37.5C", "98.6f" or "310 K" into a value and unit.
func Parse(s string) (float64, Unit, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, "", fmt.Errorf("cannot parse temperature %q", s)
	}

	unit := Unit(strings.ToUpper(s[len(s)-1:]))
	switch unit {
	case Celsius, Fahrenheit, Kelvin:
	default:
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownUnit, s[len(s)-1:])
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
	if err != nil {
		return 0, "", fmt.Errorf("cannot parse temperature %q: %w", s, err)
	}
	return value, unit, nil
}

func toKelvin(value float64, from Unit) (float64, error) {
	switch from {
	case Celsius:
		return value + 273.15, nil
	case Fahrenheit:
		return (value-32)*5/9 + 273.15, nil
	case Kelvin:
		return value, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
}

func fromKelvin(kelvin float64, to Unit) (float64, error) {
	switch to {
	case Celsius:
		return kelvin - 273.15, nil
	case Fahrenheit:
		return (kelvin-273.15)*9/5 + 32, nil
	case Kelvin:
		return kelvin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
}
