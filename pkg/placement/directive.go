package placement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/gridplace/pkg/errors"
	"github.com/matzehuels/gridplace/pkg/grid"
)

// ValidateDirectives checks that every element and position lies in 1..N and
// that no position or element appears twice.
func ValidateDirectives(g grid.Grid, ds []Directive) error {
	n := g.Size()
	positions := make(map[int]int, len(ds))
	elements := make(map[int]bool, len(ds))
	for _, d := range ds {
		if d.Element < 1 || d.Element > n {
			return errors.New(errors.ErrCodeInvalidDirective, "element %d out of range (1..%d)", d.Element, n)
		}
		if d.Position < 1 || d.Position > n {
			return errors.New(errors.ErrCodeInvalidDirective, "position %d out of range (1..%d)", d.Position, n)
		}
		if other, dup := positions[d.Position]; dup {
			return errors.New(errors.ErrCodeInvalidDirective,
				"position %d already taken by element %d", d.Position, other)
		}
		if elements[d.Element] {
			return errors.New(errors.ErrCodeInvalidDirective, "element %d fixed more than once", d.Element)
		}
		positions[d.Position] = d.Element
		elements[d.Element] = true
	}
	return nil
}

// ParseDirectives parses the editor's text form "element,position; ..." and
// validates the result against g. Blank input yields no directives.
//
//	ParseDirectives("1,5; 3,7", grid.New(3, 3)) // [{1 5} {3 7}]
func ParseDirectives(s string, g grid.Grid) ([]Directive, error) {
	var out []Directive
	for _, seg := range strings.Split(s, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		d, err := parsePair(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := ValidateDirectives(g, out); err != nil {
		return nil, err
	}
	return out, nil
}

func parsePair(seg string) (Directive, error) {
	parts := strings.Split(seg, ",")
	if len(parts) != 2 {
		return Directive{}, errors.New(errors.ErrCodeInvalidDirective,
			"invalid pair %q: want 'element,position; element,position; ...'", seg)
	}
	el, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	pos, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return Directive{}, errors.New(errors.ErrCodeInvalidDirective,
			"invalid pair %q: element and position must be integers", seg)
	}
	return Directive{Element: el, Position: pos}, nil
}

// FormatDirectives renders ds in the form accepted by ParseDirectives.
func FormatDirectives(ds []Directive) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = fmt.Sprintf("%d,%d", d.Element, d.Position)
	}
	return strings.Join(parts, "; ")
}
