package aggregate

import (
	"fmt"
	"strings"
)

// Category is a shipment-category filter: a single letter A-L or Blank.
type Category string

// Blank selects rows whose category cell is absent, empty or whitespace.
const Blank Category = "blank"

const (
	firstLetter = 'A'
	lastLetter  = 'L'
)

// Categories lists every selectable filter in display order.
func Categories() []Category {
	out := make([]Category, 0, lastLetter-firstLetter+2)
	for c := firstLetter; c <= lastLetter; c++ {
		out = append(out, Category(string(c)))
	}
	return append(out, Blank)
}

// ParseCategory accepts "A".."L" and "blank". Letters are not case folded:
// the category column is compared verbatim.
func ParseCategory(s string) (Category, error) {
	if s == string(Blank) {
		return Blank, nil
	}
	if len(s) == 1 && s[0] >= firstLetter && s[0] <= lastLetter {
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q: want one of A-L or %q", s, Blank)
}

// Match reports whether a category cell satisfies the filter. present is
// false when the row is too short to have the cell at all.
func (c Category) Match(cell string, present bool) bool {
	if c == Blank {
		return !present || strings.TrimSpace(cell) == ""
	}
	return present && cell == string(c)
}

func (c Category) String() string {
	return string(c)
}
