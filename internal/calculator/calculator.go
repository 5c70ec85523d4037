// Package calculator estimates working weights from a one-rep max.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Rounding string

const (
	RoundingNone Rounding = "none"
	RoundingHalf Rounding = "0.5"
	RoundingOne  Rounding = "1"
)

var (
	ErrInvalidOneRepMax = errors.New("one rep max must be greater than zero")
	ErrInvalidPercent   = errors.New("percent must be between 0 and 100")
	ErrInvalidRounding  = errors.New("unknown rounding")
)

// QuickPercents are the shortcuts offered next to the percent slider.
var QuickPercents = []int{50, 60, 70, 80, 90}

var printer = message.NewPrinter(language.Spanish)

func ParseRounding(s string) (Rounding, error) {
	switch r := Rounding(strings.TrimSpace(s)); r {
	case "":
		return RoundingNone, nil
	case RoundingNone, RoundingHalf, RoundingOne:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRounding, s)
	}
}

// Calculate returns percent of oneRepMax, rounded to the nearest 0.5 or 1 when asked.
func Calculate(oneRepMax float64, percent int, rounding Rounding) (float64, error) {
	if math.IsNaN(oneRepMax) || math.IsInf(oneRepMax, 0) || oneRepMax <= 0 {
		return 0, ErrInvalidOneRepMax
	}
	if percent < 0 || percent > 100 {
		return 0, ErrInvalidPercent
	}

	value := oneRepMax * float64(percent) / 100
	switch rounding {
	case RoundingNone, "":
	case RoundingHalf:
		value = math.Round(value*2) / 2
	case RoundingOne:
		value = math.Round(value)
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRounding, rounding)
	}

	return value, nil
}

// FormatKg renders a weight the way the UI shows it, e.g. "72,5 kg".
func FormatKg(value float64) string {
	return printer.Sprintf("%v kg", number.Decimal(value, number.MaxFractionDigits(2)))
}
