package category

import (
	"errors"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown category")

// Category is one of the curriculum tracks a quiz can belong to.
type Category string

const (
	LLD Category = "LLD"
	HLD Category = "HLD"
	DSA Category = "DSA"
)

// All returns every category in canonical order. Tie-breaks and
// per-category listings follow this order.
func All() []Category {
	return []Category{LLD, HLD, DSA}
}

// Parse accepts a raw category value, case-insensitively.
func Parse(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrUnknownCategory
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case LLD, HLD, DSA:
		return true
	}
	return false
}

// Index is the position of c in the canonical order, or -1.
func (c Category) Index() int {
	for i, v := range All() {
		if v == c {
			return i
		}
	}
	return -1
}

func (c Category) FullName() string {
	switch c {
	case LLD:
		return "Low Level Design"
	case HLD:
		return "High Level Design"
	case DSA:
		return "Data Structures & Algorithms"
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}
