package latex

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrRelativeLength is returned when a length relative to a document dimension is converted to absolute units.
var ErrRelativeLength = errors.New("length is relative to a document dimension")

var length = regexp.MustCompile(`^\s*([+-]?(?:\d+\.?\d*|\.\d+))\s*(\\?[a-zA-Z]+)\s*$`)

// points per unit
var units = map[string]float64{
	"pt": 1,
	"bp": 72.27 / 72,
	"px": 72.27 / 72,
	"mm": 72.27 / 25.4,
	"cm": 72.27 / 2.54,
	"in": 72.27,
	"pc": 12,
	"dd": 1238.0 / 1157,
	"cc": 12 * 1238.0 / 1157,
	"sp": 1.0 / 65536,
	"em": 10,
	"ex": 4.3,
}

// Length is a dimension like 5.1cm, 6em or 0.25\textwidth.
type Length struct {
	Value float64
	Unit  string // unit or length command, eg. cm or \textwidth
}

// ParseLength parses a number followed by a unit or a length command.
func ParseLength(raw string) (Length, error) {
	match := length.FindStringSubmatch(raw)
	if len(match) == 0 {
		return Length{}, fmt.Errorf("unable to parse length %#v", raw)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return Length{}, err
	}

	unit := match[2]
	if _, ok := units[unit]; !ok && !strings.HasPrefix(unit, "\\") {
		return Length{}, fmt.Errorf("length unit %#v is not supported", unit)
	}

	return Length{Value: value, Unit: unit}, nil
}

// Relative checks if length is a fraction of a length command, eg. 0.5\linewidth.
func (l Length) Relative() bool {
	return strings.HasPrefix(l.Unit, "\\")
}

// Points converts length to TeX points, em and ex are taken for a 10pt font.
func (l Length) Points() (float64, error) {
	if l.Relative() {
		return 0, fmt.Errorf("%w: %s", ErrRelativeLength, l.Unit)
	}

	factor, ok := units[l.Unit]
	if !ok {
		return 0, fmt.Errorf("length unit %#v is not supported", l.Unit)
	}

	return l.Value * factor, nil
}

// Centimeters converts length to centimeters.
func (l Length) Centimeters() (float64, error) {
	pt, err := l.Points()
	if err != nil {
		return 0, err
	}

	return pt / units["cm"], nil
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit
}
